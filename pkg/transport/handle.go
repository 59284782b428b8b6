package transport

import "net/http"

// Handle is the capability set the writer needs to talk to the agent.
// SetEndpoint and the static headers are applied once at construction;
// SetBody, per-request headers, and Perform run once per batch.
type Handle interface {
	// SetEndpoint sets the URL subsequent requests are posted to.
	SetEndpoint(url string) error

	// AppendHeaders adds headers given as "Key: Value" strings.
	// Appending a key that is already present replaces its value.
	AppendHeaders(headers []string) error

	// SetBody sets the request body for the next Perform.
	SetBody(body []byte) error

	// Perform posts the current body to the endpoint. A transport
	// failure or a non-2xx response is returned as an error.
	Perform() error

	// LastError returns a description of the most recent Perform
	// failure, or the empty string.
	LastError() string
}

// HTTPClient abstracts HTTP operations for dependency injection.
// The standard *http.Client satisfies this interface.
type HTTPClient interface {
	// Do sends an HTTP request and returns an HTTP response.
	Do(req *http.Request) (*http.Response, error)
}

package transport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// defaultHTTPTimeout bounds a single request to the agent. The writer
// holds no lock while performing, so a slow agent delays at most one
// cycle per timeout.
const defaultHTTPTimeout = 10 * time.Second

// maxErrorBodyBytes limits how much of an error response is kept for
// diagnostics.
const maxErrorBodyBytes = 1 << 10

// ErrNoEndpoint is returned by Perform when SetEndpoint was never called.
var ErrNoEndpoint = errors.New("transport: endpoint not set")

// AgentHandle implements Handle over net/http.
//
// Not safe for concurrent use. The writer's worker goroutine is the only
// caller after construction.
type AgentHandle struct {
	client   HTTPClient
	endpoint string
	headers  http.Header
	body     []byte
	lastErr  string
}

// NewAgentHandle creates a handle that issues requests through client.
// A nil client gets a default http.Client with a request timeout.
func NewAgentHandle(client HTTPClient) *AgentHandle {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &AgentHandle{
		client:  client,
		headers: make(http.Header),
	}
}

// SetEndpoint validates and stores the URL subsequent requests post to.
func (h *AgentHandle) SetEndpoint(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse endpoint: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("endpoint %q: scheme and host are required", rawURL)
	}
	h.endpoint = u.String()
	return nil
}

// AppendHeaders parses "Key: Value" strings into the header set.
// Re-appending an existing key replaces its value, so per-request
// headers do not accumulate across cycles.
func (h *AgentHandle) AppendHeaders(headers []string) error {
	for _, header := range headers {
		key, value, ok := strings.Cut(header, ":")
		if !ok || strings.TrimSpace(key) == "" {
			return fmt.Errorf("malformed header %q, want \"Key: Value\"", header)
		}
		h.headers.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	return nil
}

// SetBody stores the payload for the next Perform.
func (h *AgentHandle) SetBody(body []byte) error {
	h.body = body
	return nil
}

// Perform posts the current body to the endpoint.
func (h *AgentHandle) Perform() error {
	err := h.perform()
	if err != nil {
		h.lastErr = err.Error()
	} else {
		h.lastErr = ""
	}
	return err
}

func (h *AgentHandle) perform() error {
	if h.endpoint == "" {
		return ErrNoEndpoint
	}

	req, err := http.NewRequest(http.MethodPost, h.endpoint, bytes.NewReader(h.body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for key, values := range h.headers {
		for _, value := range values {
			req.Header.Set(key, value)
		}
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("post to agent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return fmt.Errorf("agent returned %d: %s", resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// LastError returns the most recent Perform failure, or "".
func (h *AgentHandle) LastError() string {
	return h.lastErr
}

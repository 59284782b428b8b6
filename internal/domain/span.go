package domain

// Span is one finished telemetry unit as handed to the writer by a tracer.
// Field tags cover both the msgpack wire format spoken to the collection
// agent and the NDJSON form consumed by the spanship CLI.
type Span struct {
	// TraceID groups spans belonging to one request.
	TraceID uint64 `msgpack:"trace_id" json:"trace_id"`

	// SpanID identifies this span within its trace.
	SpanID uint64 `msgpack:"span_id" json:"span_id"`

	// ParentID is the SpanID of the parent, zero for a root span.
	ParentID uint64 `msgpack:"parent_id" json:"parent_id,omitempty"`

	// Service is the name of the instrumented service.
	Service string `msgpack:"service" json:"service"`

	// Name is the operation name (e.g., "http.request").
	Name string `msgpack:"name" json:"name"`

	// Resource is the concrete resource acted on (e.g., "GET /users/:id").
	Resource string `msgpack:"resource" json:"resource,omitempty"`

	// Start is the span start time in unix nanoseconds.
	Start int64 `msgpack:"start" json:"start"`

	// Duration is the span duration in nanoseconds.
	Duration int64 `msgpack:"duration" json:"duration"`

	// Error is nonzero when the span finished in error.
	Error int32 `msgpack:"error" json:"error,omitempty"`

	// Meta holds free-form string tags.
	Meta map[string]string `msgpack:"meta,omitempty" json:"meta,omitempty"`
}

// IsRoot reports whether the span has no parent.
func (s Span) IsRoot() bool {
	return s.ParentID == 0
}

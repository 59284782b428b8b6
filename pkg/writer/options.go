package writer

import (
	"github.com/bft-labs/spanship/pkg/codec"
	"github.com/bft-labs/spanship/pkg/log"
	"github.com/bft-labs/spanship/pkg/transport"
)

// Option configures optional behavior of a Writer.
type Option[R any] func(*options[R])

// options holds the optional configuration for a Writer instance.
type options[R any] struct {
	handle  transport.Handle
	client  transport.HTTPClient
	encoder codec.Encoder[R]
	logger  log.Logger
}

func defaultOptions[R any]() options[R] {
	return options[R]{
		encoder: codec.NewMsgpack[R](),
		logger:  log.NewNoopLogger(),
	}
}

// WithHandle sets a custom transport handle. The writer takes exclusive
// ownership; no other goroutine may touch the handle afterwards.
// If not provided, a transport.AgentHandle is used.
func WithHandle[R any](h transport.Handle) Option[R] {
	return func(o *options[R]) {
		o.handle = h
	}
}

// WithHTTPClient sets the HTTP client backing the default handle.
// Ignored when WithHandle is also given.
func WithHTTPClient[R any](client transport.HTTPClient) Option[R] {
	return func(o *options[R]) {
		o.client = client
	}
}

// WithEncoder sets a custom batch encoder.
// If not provided, the msgpack encoder is used.
func WithEncoder[R any](e codec.Encoder[R]) Option[R] {
	return func(o *options[R]) {
		o.encoder = e
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger[R any](logger log.Logger) Option[R] {
	return func(o *options[R]) {
		o.logger = logger
	}
}

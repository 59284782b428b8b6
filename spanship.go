// Package spanship provides an asynchronous batching span writer for a
// local trace collection agent.
//
// Application code records spans and hands them to the writer; a
// dedicated worker goroutine accumulates them and periodically posts a
// msgpack batch to the agent over HTTP. The writer is best effort by
// design: it never blocks or fails the instrumented application, at the
// cost of dropping telemetry under overload or agent failure.
//
// Example usage:
//
//	w, err := spanship.New(spanship.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Stop()
//
//	w.Write(spanship.Span{
//	    TraceID: 1, SpanID: 2,
//	    Service: "checkout", Name: "http.request",
//	})
//
//	w.Flush() // before Stop, if queued spans must be attempted
//
// For custom record types, use the generic writer package directly.
package spanship

import (
	"fmt"

	"github.com/bft-labs/spanship/internal/domain"
	"github.com/bft-labs/spanship/pkg/codec"
	"github.com/bft-labs/spanship/pkg/log"
	"github.com/bft-labs/spanship/pkg/transport"
	"github.com/bft-labs/spanship/pkg/writer"
)

// Span is one finished telemetry unit, the record type this package's
// Writer ships.
type Span = domain.Span

// Config holds the writer configuration.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = writer.Config

// Writer is the span-specialized batching writer.
type Writer = writer.Writer[domain.Span]

// Stats is a snapshot of a Writer's counters.
type Stats = writer.Stats

// Option configures optional behavior of a Writer.
type Option = writer.Option[domain.Span]

// Handle is the transport capability consumed by the writer.
type Handle = transport.Handle

// HTTPClient is the interface for making HTTP requests.
// *http.Client satisfies this interface.
type HTTPClient = transport.HTTPClient

// Logger is the interface for structured logging.
type Logger = log.Logger

// New creates a span writer and starts its worker goroutine.
// Returns an error only for unusable configuration; once constructed,
// the writer never surfaces errors to callers.
func New(cfg Config, opts ...Option) (*Writer, error) {
	if err := validateModuleVersions(); err != nil {
		return nil, err
	}
	return writer.New[domain.Span](cfg, opts...)
}

// DefaultConfig returns a Config targeting a local agent with default
// write period and queue bound.
func DefaultConfig() Config {
	cfg := Config{}
	cfg.SetDefaults()
	return cfg
}

// WithHandle sets a custom transport handle. The writer takes exclusive
// ownership of it.
func WithHandle(h Handle) Option {
	return writer.WithHandle[domain.Span](h)
}

// WithHTTPClient sets the HTTP client backing the default handle.
func WithHTTPClient(client HTTPClient) Option {
	return writer.WithHTTPClient[domain.Span](client)
}

// WithEncoder sets a custom batch encoder.
func WithEncoder(e codec.Encoder[domain.Span]) Option {
	return writer.WithEncoder[domain.Span](e)
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return writer.WithLogger[domain.Span](logger)
}

// validateModuleVersions checks that all module versions are compatible.
// Returns an error if any module version is below its minimum compatible version.
func validateModuleVersions() error {
	modules := map[string]struct {
		version    string
		minVersion string
	}{
		"codec":     {codec.Version, codec.MinCompatibleVersion},
		"transport": {transport.Version, transport.MinCompatibleVersion},
		"writer":    {writer.Version, writer.MinCompatibleVersion},
		"log":       {log.Version, log.MinCompatibleVersion},
	}

	for name, m := range modules {
		if !isVersionCompatible(m.version, m.minVersion) {
			return fmt.Errorf("module %s version %s is below minimum compatible version %s",
				name, m.version, m.minVersion)
		}
	}

	return nil
}

// isVersionCompatible checks if version >= minVersion using semantic versioning.
// Assumes versions are in format "major.minor.patch".
func isVersionCompatible(version, minVersion string) bool {
	var vMajor, vMinor, vPatch int
	var mMajor, mMinor, mPatch int

	_, _ = fmt.Sscanf(version, "%d.%d.%d", &vMajor, &vMinor, &vPatch)
	_, _ = fmt.Sscanf(minVersion, "%d.%d.%d", &mMajor, &mMinor, &mPatch)

	if vMajor != mMajor {
		return vMajor > mMajor
	}
	if vMinor != mMinor {
		return vMinor > mMinor
	}
	return vPatch >= mPatch
}

package writer

import (
	"fmt"
	"time"
)

const (
	// spansPath is the agent's ingest endpoint for span batches.
	spansPath = "/v0.3/spans"

	// DefaultAgentHost is where a local collection agent listens.
	DefaultAgentHost = "localhost"

	// DefaultAgentPort is the collection agent's default ingest port.
	DefaultAgentPort = 8126

	// DefaultWritePeriod is the maximum time between sends. The agent
	// discards records older than 10s, so this stays well under that.
	DefaultWritePeriod = time.Second

	// DefaultMaxQueuedRecords bounds the in-memory queue.
	DefaultMaxQueuedRecords = 7000
)

// Header names sent with every batch. Lang and tracer version are set
// once at construction; the record count is set per request.
const (
	headerLang          = "X-Spanship-Lang"
	headerTracerVersion = "X-Spanship-Tracer-Version"
	headerSpanCount     = "X-Spanship-Span-Count"
)

// Config holds the writer configuration. The zero value is usable after
// SetDefaults; New applies defaults and validation itself.
type Config struct {
	// Host of the collection agent.
	Host string

	// Port of the collection agent.
	Port int

	// WritePeriod is the interval between periodic drains.
	WritePeriod time.Duration

	// MaxQueuedRecords caps the queue; records written past the cap
	// are dropped.
	MaxQueuedRecords int

	// TracerVersion identifies the producing client to the agent.
	TracerVersion string
}

// SetDefaults fills unset fields with default values.
func (c *Config) SetDefaults() {
	if c.Host == "" {
		c.Host = DefaultAgentHost
	}
	if c.Port == 0 {
		c.Port = DefaultAgentPort
	}
	if c.WritePeriod == 0 {
		c.WritePeriod = DefaultWritePeriod
	}
	if c.MaxQueuedRecords == 0 {
		c.MaxQueuedRecords = DefaultMaxQueuedRecords
	}
	if c.TracerVersion == "" {
		c.TracerVersion = Version
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("agent host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("agent port %d out of range", c.Port)
	}
	if c.WritePeriod <= 0 {
		return fmt.Errorf("write period must be positive")
	}
	if c.MaxQueuedRecords <= 0 {
		return fmt.Errorf("max queued records must be positive")
	}
	return nil
}

// endpoint returns the full ingest URL for the configured agent.
func (c *Config) endpoint() string {
	return fmt.Sprintf("http://%s:%d%s", c.Host, c.Port, spansPath)
}

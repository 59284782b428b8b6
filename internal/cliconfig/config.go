// Package cliconfig holds the configuration surface of the spanship CLI:
// defaults, TOML file, SPANSHIP_* environment variables, and flags, with
// flags taking precedence via the changed map the command builds from
// pflag.
package cliconfig

import (
	"fmt"
	"strconv"
	"time"
)

// Config holds CLI configuration for spanship.
type Config struct {
	AgentHost string
	AgentPort int

	WritePeriod    time.Duration
	MaxQueuedSpans int

	// Service is stamped on incoming spans that carry no service name.
	Service string

	// SpoolDir switches the CLI from stdin to spool-directory mode.
	SpoolDir string

	// Once processes what is already present and exits after a flush.
	Once bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		AgentHost:      "localhost",
		AgentPort:      8126,
		WritePeriod:    time.Second,
		MaxQueuedSpans: 7000,
		Service:        "spanship",
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.AgentHost == "" {
		return fmt.Errorf("agent-host is required")
	}
	if c.AgentPort <= 0 || c.AgentPort > 65535 {
		return fmt.Errorf("agent-port %d out of range", c.AgentPort)
	}
	if c.WritePeriod <= 0 {
		return fmt.Errorf("write period must be positive")
	}
	if c.MaxQueuedSpans <= 0 {
		return fmt.Errorf("max queued spans must be positive")
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}

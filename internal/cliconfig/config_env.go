package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (SPANSHIP_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("agent-host", os.Getenv("SPANSHIP_AGENT_HOST"), &cfg.AgentHost)
	s.setString("service", os.Getenv("SPANSHIP_SERVICE"), &cfg.Service)
	s.setString("spool-dir", os.Getenv("SPANSHIP_SPOOL_DIR"), &cfg.SpoolDir)

	if err := s.setIntFromString("agent-port", os.Getenv("SPANSHIP_AGENT_PORT"), &cfg.AgentPort); err != nil {
		return err
	}
	if err := s.setDuration("write-period", os.Getenv("SPANSHIP_WRITE_PERIOD"), &cfg.WritePeriod); err != nil {
		return err
	}
	if err := s.setIntFromString("max-queued-spans", os.Getenv("SPANSHIP_MAX_QUEUED_SPANS"), &cfg.MaxQueuedSpans); err != nil {
		return err
	}

	s.setBoolFromString("once", os.Getenv("SPANSHIP_ONCE"), &cfg.Once)

	return nil
}

package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	AgentHost      string `toml:"agent_host"`
	AgentPort      int    `toml:"agent_port"`
	WritePeriod    string `toml:"write_period"`
	MaxQueuedSpans int    `toml:"max_queued_spans"`
	Service        string `toml:"service"`
	SpoolDir       string `toml:"spool_dir"`
	Once           *bool  `toml:"once"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.spanship/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".spanship", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("agent-host", fc.AgentHost, &cfg.AgentHost)
	s.setInt("agent-port", fc.AgentPort, &cfg.AgentPort)
	s.setString("service", fc.Service, &cfg.Service)
	s.setString("spool-dir", fc.SpoolDir, &cfg.SpoolDir)

	if err := s.setDuration("write-period", fc.WritePeriod, &cfg.WritePeriod); err != nil {
		return err
	}
	s.setInt("max-queued-spans", fc.MaxQueuedSpans, &cfg.MaxQueuedSpans)

	s.setBool("once", fc.Once, &cfg.Once)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

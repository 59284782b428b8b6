package cliconfig

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.AgentHost != "localhost" {
		t.Errorf("AgentHost = %v, want localhost", cfg.AgentHost)
	}
	if cfg.AgentPort != 8126 {
		t.Errorf("AgentPort = %v, want 8126", cfg.AgentPort)
	}
	if cfg.WritePeriod != time.Second {
		t.Errorf("WritePeriod = %v, want 1s", cfg.WritePeriod)
	}
	if cfg.MaxQueuedSpans != 7000 {
		t.Errorf("MaxQueuedSpans = %v, want 7000", cfg.MaxQueuedSpans)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing agent host",
			mutate:  func(c *Config) { c.AgentHost = "" },
			wantErr: true,
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.AgentPort = 100000 },
			wantErr: true,
		},
		{
			name:    "zero write period",
			mutate:  func(c *Config) { c.WritePeriod = 0 },
			wantErr: true,
		},
		{
			name:    "negative queue bound",
			mutate:  func(c *Config) { c.MaxQueuedSpans = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	t.Setenv("SPANSHIP_AGENT_HOST", "env-agent")
	t.Setenv("SPANSHIP_AGENT_PORT", "7777")
	t.Setenv("SPANSHIP_WRITE_PERIOD", "2s")
	t.Setenv("SPANSHIP_SERVICE", "env-service")
	t.Setenv("SPANSHIP_ONCE", "1")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, map[string]bool{}); err != nil {
		t.Fatalf("ApplyEnvConfig: %v", err)
	}

	if cfg.AgentHost != "env-agent" {
		t.Errorf("AgentHost = %v, want env-agent", cfg.AgentHost)
	}
	if cfg.AgentPort != 7777 {
		t.Errorf("AgentPort = %v, want 7777", cfg.AgentPort)
	}
	if cfg.WritePeriod != 2*time.Second {
		t.Errorf("WritePeriod = %v, want 2s", cfg.WritePeriod)
	}
	if cfg.Service != "env-service" {
		t.Errorf("Service = %v, want env-service", cfg.Service)
	}
	if !cfg.Once {
		t.Error("Once = false, want true")
	}
}

func TestApplyEnvConfig_FlagsWin(t *testing.T) {
	t.Setenv("SPANSHIP_AGENT_PORT", "7777")

	cfg := DefaultConfig()
	cfg.AgentPort = 1234
	changed := map[string]bool{"agent-port": true}
	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig: %v", err)
	}

	if cfg.AgentPort != 1234 {
		t.Errorf("AgentPort = %v, explicitly set flag must win", cfg.AgentPort)
	}
}

func TestApplyEnvConfig_InvalidPort(t *testing.T) {
	t.Setenv("SPANSHIP_AGENT_PORT", "not-a-port")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, map[string]bool{}); err == nil {
		t.Error("ApplyEnvConfig accepted an invalid port")
	}
}

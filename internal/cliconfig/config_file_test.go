package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFileConfig(t *testing.T) {
	path := writeConfigFile(t, `
agent_host = "agent.internal"
agent_port = 9126
write_period = "250ms"
max_queued_spans = 500
service = "billing"
once = true
`)

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig: %v", err)
	}

	cfg := DefaultConfig()
	if err := ApplyFileConfig(&cfg, fc, map[string]bool{}); err != nil {
		t.Fatalf("ApplyFileConfig: %v", err)
	}

	if cfg.AgentHost != "agent.internal" {
		t.Errorf("AgentHost = %v, want agent.internal", cfg.AgentHost)
	}
	if cfg.AgentPort != 9126 {
		t.Errorf("AgentPort = %v, want 9126", cfg.AgentPort)
	}
	if cfg.WritePeriod != 250*time.Millisecond {
		t.Errorf("WritePeriod = %v, want 250ms", cfg.WritePeriod)
	}
	if cfg.MaxQueuedSpans != 500 {
		t.Errorf("MaxQueuedSpans = %v, want 500", cfg.MaxQueuedSpans)
	}
	if cfg.Service != "billing" {
		t.Errorf("Service = %v, want billing", cfg.Service)
	}
	if !cfg.Once {
		t.Error("Once = false, want true")
	}
}

func TestApplyFileConfig_RespectsChangedFlags(t *testing.T) {
	fc := FileConfig{AgentHost: "from-file", AgentPort: 9000}

	cfg := DefaultConfig()
	cfg.AgentHost = "from-flag"
	changed := map[string]bool{"agent-host": true}

	if err := ApplyFileConfig(&cfg, fc, changed); err != nil {
		t.Fatalf("ApplyFileConfig: %v", err)
	}

	if cfg.AgentHost != "from-flag" {
		t.Errorf("AgentHost = %v, explicitly set flag must win", cfg.AgentHost)
	}
	if cfg.AgentPort != 9000 {
		t.Errorf("AgentPort = %v, want 9000 from file", cfg.AgentPort)
	}
}

func TestLoadFileConfig_InvalidDuration(t *testing.T) {
	path := writeConfigFile(t, `write_period = "not-a-duration"`)

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig: %v", err)
	}

	cfg := DefaultConfig()
	if err := ApplyFileConfig(&cfg, fc, map[string]bool{}); err == nil {
		t.Error("ApplyFileConfig accepted an invalid duration")
	}
}

func TestLoadFileConfig_MissingFile(t *testing.T) {
	if _, err := LoadFileConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("LoadFileConfig succeeded on a missing file")
	}
}

package config

import (
	"os"
	"testing"
)

const sampleYAML = `
cache:
  max_entries: 100
  max_memory_bytes: 52428800
  ttl: 30m
sandbox:
  backend: isolated
  max_execution_ms: 5000
monitoring:
  log_level: info
  log_format: json
`

func TestLoadFromBytesParsesAndValidates(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Cache.MaxEntries != 100 {
		t.Fatalf("expected 100 max entries, got %d", cfg.Cache.MaxEntries)
	}
	if cfg.Sandbox.Backend != "isolated" {
		t.Fatalf("expected isolated backend, got %q", cfg.Sandbox.Backend)
	}
}

func TestLoadFromBytesRejectsBadSandboxBackend(t *testing.T) {
	_, err := LoadFromBytes([]byte("sandbox:\n  backend: dangerous\n"))
	if err == nil {
		t.Fatalf("expected validation error for bad sandbox backend")
	}
}

func TestExpandEnvWithDefaultsUsesDefaultWhenUnset(t *testing.T) {
	os.Unsetenv("OPTIFLOW_TEST_VAR")
	got := ExpandEnvWithDefaults("level: ${OPTIFLOW_TEST_VAR:-info}")
	if got != "level: info" {
		t.Fatalf("expected default substitution, got %q", got)
	}
}

func TestExpandEnvWithDefaultsUsesEnvWhenSet(t *testing.T) {
	t.Setenv("OPTIFLOW_TEST_VAR", "debug")
	got := ExpandEnvWithDefaults("level: ${OPTIFLOW_TEST_VAR:-info}")
	if got != "level: debug" {
		t.Fatalf("expected env substitution, got %q", got)
	}
}

func TestApplyEnvOverridesSetsSandboxBackend(t *testing.T) {
	t.Setenv("OPTIFLOW_SANDBOX_BACKEND", "in-process")
	cfg, err := LoadFromBytes([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Sandbox.Backend != "in-process" {
		t.Fatalf("expected env override to win, got %q", cfg.Sandbox.Backend)
	}
}

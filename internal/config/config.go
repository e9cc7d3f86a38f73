// Package config loads and validates root configuration for the
// context optimization core.
//
// FILES:
//   - config.go:     Root Config struct, Load(), Validate()
//   - cache.go:      Smart cache capacity/lifetime settings
//   - sandbox.go:    Sandbox backend and resource caps
//   - monitoring.go: Logging settings
package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the context optimization core.
type Config struct {
	Cache      CacheConfig      `yaml:"cache"`
	Compress   CompressConfig   `yaml:"compress"`
	LogSummary LogSummaryConfig `yaml:"log_summary"`
	Sandbox    SandboxConfig    `yaml:"sandbox"`
	Session    SessionConfig    `yaml:"session"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
}

// CompressConfig controls default compressor behavior.
type CompressConfig struct {
	DefaultDetail string `yaml:"default_detail"` // minimal, normal, detailed
}

// LogSummaryConfig controls log-summarization weighting and clustering.
type LogSummaryConfig struct {
	LevelWeight    float64 `yaml:"level_weight"`
	TFIDFWeight    float64 `yaml:"tfidf_weight"`
	PositionWeight float64 `yaml:"position_weight"`
	RarityWeight   float64 `yaml:"rarity_weight"`
	ClusterMethod  string  `yaml:"cluster_method"` // levenshtein or jaccard
	ClusterThresh  float64 `yaml:"cluster_threshold"`
}

// SessionConfig controls the session tracker's optional metrics export.
type SessionConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
}

// expandEnvWithDefaults expands environment variables with support for default values.
// Supports both ${VAR} and ${VAR:-default} syntax.
func expandEnvWithDefaults(s string) string {
	// Pattern matches ${VAR:-default} or ${VAR}
	re := regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		// Extract variable name and default value
		parts := re.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		varName := parts[1]
		defaultValue := ""
		if len(parts) > 2 {
			defaultValue = parts[2]
		}

		// Get environment variable value
		if value := os.Getenv(varName); value != "" {
			return value
		}

		// Return default if provided, otherwise empty string
		return defaultValue
	})
}

// Load reads configuration from a YAML file.
// Returns an error if the file doesn't exist or is invalid.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config file path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	return LoadFromBytes(data)
}

// LoadFromBytes parses configuration from raw YAML bytes.
// Supports ${VAR:-default} env var expansion, env overrides, and validation.
func LoadFromBytes(data []byte) (*Config, error) {
	// Expand environment variables (supports ${VAR:-default} syntax)
	expanded := expandEnvWithDefaults(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// ExpandEnvWithDefaults expands environment variables with support for default values.
// Exported wrapper around the expansion LoadFromBytes applies.
func ExpandEnvWithDefaults(s string) string {
	return expandEnvWithDefaults(s)
}

// applyEnvOverrides lets the sandbox backend selector and the
// compression log path be set without editing the config file.
func (c *Config) applyEnvOverrides() {
	if backend := os.Getenv("OPTIFLOW_SANDBOX_BACKEND"); backend != "" {
		c.Sandbox.Backend = backend
	}
	if logPath := os.Getenv("OPTIFLOW_COMPRESSION_LOG"); logPath != "" {
		c.Monitoring.CompressionLogPath = logPath
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("cache.max_entries must be >= 0")
	}
	if c.Cache.MaxMemoryBytes < 0 {
		return fmt.Errorf("cache.max_memory_bytes must be >= 0")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be >= 0")
	}

	switch c.Compress.DefaultDetail {
	case "", "minimal", "normal", "detailed":
	default:
		return fmt.Errorf("compress.default_detail must be 'minimal', 'normal', or 'detailed', got %q", c.Compress.DefaultDetail)
	}

	switch c.LogSummary.ClusterMethod {
	case "", "levenshtein", "jaccard":
	default:
		return fmt.Errorf("log_summary.cluster_method must be 'levenshtein' or 'jaccard', got %q", c.LogSummary.ClusterMethod)
	}

	switch c.Sandbox.Backend {
	case "", "isolated", "in-process":
	default:
		return fmt.Errorf("sandbox.backend must be 'isolated' or 'in-process', got %q", c.Sandbox.Backend)
	}
	if c.Sandbox.MaxExecutionMs < 0 {
		return fmt.Errorf("sandbox.max_execution_ms must be >= 0")
	}

	switch c.Monitoring.LogFormat {
	case "", "json", "console":
	default:
		return fmt.Errorf("monitoring.log_format must be 'json' or 'console', got %q", c.Monitoring.LogFormat)
	}

	return nil
}

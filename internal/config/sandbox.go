package config

// SandboxConfig controls the script-execution engine.
type SandboxConfig struct {
	Backend         string `yaml:"backend"` // "isolated" (default) or "in-process"
	MaxExecutionMs  int    `yaml:"max_execution_ms"`
	MaxMemoryMB     int    `yaml:"max_memory_mb"`
	MaxOutputTokens int    `yaml:"max_output_tokens"`
}

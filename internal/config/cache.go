package config

import "time"

// CacheConfig controls the smart cache's capacity and lifetime.
type CacheConfig struct {
	MaxEntries      int           `yaml:"max_entries"`
	MaxMemoryBytes  int64         `yaml:"max_memory_bytes"`
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval int           `yaml:"cleanup_interval"`
}

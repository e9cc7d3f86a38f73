// Package testutil provides shared test fixtures for the context
// optimization core's package tests.
package testutil

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/compresr/optiflow/internal/config"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	log.Logger = zerolog.New(io.Discard)
}

// SampleLogOutput is representative multi-level log content with
// repeated and rare lines, used across compress/logsummary tests.
const SampleLogOutput = `2026-01-15T10:00:01Z INFO  Starting worker pool with 4 workers
2026-01-15T10:00:02Z INFO  Worker 1 ready
2026-01-15T10:00:02Z INFO  Worker 2 ready
2026-01-15T10:00:02Z INFO  Worker 3 ready
2026-01-15T10:00:02Z INFO  Worker 4 ready
2026-01-15T10:00:05Z WARN  Queue depth at 80%, consider scaling
2026-01-15T10:00:06Z ERROR Database connection failed with timeout after 30 seconds
2026-01-15T10:00:06Z ERROR Database connection failed with timeout after 30 seconds
2026-01-15T10:00:07Z INFO  Retry attempt 1 of 3 for database connection
2026-01-15T10:00:08Z INFO  Retry attempt 2 of 3 for database connection
2026-01-15T10:00:12Z INFO  Successfully reconnected to database after 6 seconds downtime
2026-01-15T10:00:45Z ERROR Rate limit exceeded for user_id=12345, blocking for 60 seconds`

// SampleDiffOutput is a small unified diff touching two files, one of
// them renamed, used across compress/diff tests.
const SampleDiffOutput = `diff --git a/internal/widget/widget.go b/internal/widget/widget.go
index 1111111..2222222 100644
--- a/internal/widget/widget.go
+++ b/internal/widget/widget.go
@@ -10,7 +10,8 @@ func NewWidget(name string) *Widget {
 	return &Widget{
 		Name: name,
-		Size: 0,
+		Size: defaultSize,
+		Color: defaultColor,
 	}
 }
diff --git a/internal/widget/old_name.go b/internal/widget/new_name.go
similarity index 92%
rename from internal/widget/old_name.go
rename to internal/widget/new_name.go
index 3333333..4444444 100644
--- a/internal/widget/old_name.go
+++ b/internal/widget/new_name.go
@@ -1,4 +1,4 @@
-package oldname
+package newname
`

// SampleStacktrace is a Go-dialect panic trace mixing internal
// runtime frames with project frames, used across compress/stacktrace
// tests.
const SampleStacktrace = `panic: runtime error: index out of range [3] with length 3

goroutine 1 [running]:
runtime.panicIndex(...)
	/usr/local/go/src/runtime/panic.go:123
github.com/compresr/optiflow/internal/widget.process(...)
	/home/build/internal/widget/widget.go:42
runtime.goexit()
	/usr/local/go/src/runtime/asm_amd64.s:1695`

// DefaultTestConfig returns a valid, minimal Config suitable as a
// baseline for tests that need one.
func DefaultTestConfig() *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			MaxEntries:      100,
			MaxMemoryBytes:  50 * 1024 * 1024,
			TTL:             30 * time.Minute,
			CleanupInterval: 50,
		},
		Compress: config.CompressConfig{
			DefaultDetail: "normal",
		},
		LogSummary: config.LogSummaryConfig{
			LevelWeight:    0.3,
			TFIDFWeight:    0.3,
			PositionWeight: 0.2,
			RarityWeight:   0.2,
			ClusterMethod:  "levenshtein",
			ClusterThresh:  0.7,
		},
		Sandbox: config.SandboxConfig{
			Backend:         "isolated",
			MaxExecutionMs:  5000,
			MaxMemoryMB:     64,
			MaxOutputTokens: 2000,
		},
		Monitoring: config.MonitoringConfig{
			LogLevel:  "error",
			LogFormat: "json",
			LogOutput: "stdout",
		},
	}
}

// AggressiveSandboxConfig returns a config with a very small
// execution-time cap, for tests exercising the sandbox timeout path.
func AggressiveSandboxConfig() *config.Config {
	cfg := DefaultTestConfig()
	cfg.Sandbox.MaxExecutionMs = 100
	return cfg
}

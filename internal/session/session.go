// Package session tracks process-wide, per-tool invocation counters.
package session

import (
	"sync"
	"time"
)

// Stats is one tool's monotonic accounting: invocations, tokens in/
// out, tokens saved by compression, cumulative duration, and error
// count. Values never decrease except through an explicit Reset.
type Stats struct {
	Invocations     int64
	TokensIn        int64
	TokensOut       int64
	TokensSaved     int64
	TotalDurationMs int64
	Errors          int64
}

// Snapshot is a point-in-time read of the whole tracker.
type Snapshot struct {
	StartTime        time.Time
	PerTool          map[string]Stats
	TotalInvocations int64
	TotalTokensIn    int64
	TotalTokensOut   int64
	TotalTokensSaved int64
	TotalErrors      int64
	OptimizationRate float64
}

// Tracker is the process-wide Session Tracker singleton. It is safe
// for concurrent use from multiple tool invocations.
type Tracker struct {
	mu        sync.Mutex
	startTime time.Time
	perTool   map[string]Stats
	reporter  Reporter
}

// Reporter receives a copy of every recorded invocation, used to feed
// an optional external metrics exporter (e.g. Prometheus). Reporter
// implementations must not block.
type Reporter interface {
	Observe(toolName string, tokensIn, tokensOut, tokensSaved int, isError bool)
}

// New constructs a Tracker. reporter may be nil, in which case the
// tracker behaves as a plain in-process struct.
func New(reporter Reporter) *Tracker {
	return &Tracker{
		startTime: time.Now(),
		perTool:   make(map[string]Stats),
		reporter:  reporter,
	}
}

// Record accumulates one tool invocation's accounting into the
// tracker, called from the registry's after-path.
func (t *Tracker) Record(toolName string, tokensIn, tokensOut, tokensSaved int, durationMs int64, isError bool) {
	t.mu.Lock()
	s := t.perTool[toolName]
	s.Invocations++
	s.TokensIn += int64(tokensIn)
	s.TokensOut += int64(tokensOut)
	s.TokensSaved += int64(tokensSaved)
	s.TotalDurationMs += durationMs
	if isError {
		s.Errors++
	}
	t.perTool[toolName] = s
	t.mu.Unlock()

	if t.reporter != nil {
		t.reporter.Observe(toolName, tokensIn, tokensOut, tokensSaved, isError)
	}
}

// Snapshot returns a consistent, point-in-time copy of every counter.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := Snapshot{StartTime: t.startTime, PerTool: make(map[string]Stats, len(t.perTool))}
	for name, s := range t.perTool {
		out.PerTool[name] = s
		out.TotalInvocations += s.Invocations
		out.TotalTokensIn += s.TokensIn
		out.TotalTokensOut += s.TokensOut
		out.TotalTokensSaved += s.TokensSaved
		out.TotalErrors += s.Errors
	}
	if out.TotalTokensIn > 0 {
		out.OptimizationRate = float64(out.TotalTokensSaved) / float64(out.TotalTokensIn)
	}
	return out
}

// Reset zeroes every counter and restarts startTime.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.perTool = make(map[string]Stats)
	t.startTime = time.Now()
}

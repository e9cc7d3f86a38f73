// Package sandbox runs caller-supplied scripts against a
// capability-gated bridge instead of the host's full environment.
package sandbox

import (
	"encoding/json"
	"regexp"

	"github.com/compresr/optiflow/internal/compress"
	"github.com/compresr/optiflow/internal/tokencount"
)

// BackendKind selects which execution backend runs a script.
type BackendKind string

const (
	BackendIsolated  BackendKind = "isolated"
	BackendInProcess BackendKind = "in-process"
)

const (
	DefaultMaxExecutionMs  = 5000
	DefaultMaxMemoryMB     = 64
	DefaultMaxOutputTokens = 2000
)

// Options bounds a single script run.
type Options struct {
	Backend         BackendKind
	MaxExecutionMs  int
	MaxMemoryMB     int
	MaxOutputTokens int
}

func (o Options) withDefaults() Options {
	if o.MaxExecutionMs <= 0 {
		o.MaxExecutionMs = DefaultMaxExecutionMs
	}
	if o.MaxMemoryMB <= 0 {
		o.MaxMemoryMB = DefaultMaxMemoryMB
	}
	if o.MaxOutputTokens <= 0 {
		o.MaxOutputTokens = DefaultMaxOutputTokens
	}
	return o
}

// Result is what a script run produces.
type Result struct {
	OK         bool
	Value      any
	Console    []string
	Error      string
	WasTrimmed bool
}

// Backend executes one script body against a bridge of host
// functions, returning its result or a failure reason. Implementations
// must release every resource they acquire on every exit path.
type Backend interface {
	Run(script string, bridge map[string]any, opts Options) Result
}

var blockedPatternRe = regexp.MustCompile(`eval|require|child_process|fs\.|process\.exit|Function\(`)

func staticScan(script string) string {
	if loc := blockedPatternRe.FindString(script); loc != "" {
		return loc
	}
	return ""
}

func blockedResult(pattern string) Result {
	return Result{OK: false, Error: "Blocked patterns: " + pattern}
}

// enforceOutputBudget JSON-serializes value, token-counts it, and —
// if it exceeds maxOutputTokens — replaces it with the generic
// compressor's output over the serialized form.
func enforceOutputBudget(value any, maxOutputTokens int) (any, bool) {
	serialized, err := marshalForBudget(value)
	if err != nil {
		return value, false
	}
	if tokencount.Count(serialized) <= maxOutputTokens {
		return value, false
	}
	compressed := compress.Generic(serialized, compress.Options{Detail: compress.DetailNormal})
	return compressed, true
}

func marshalForBudget(value any) (string, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

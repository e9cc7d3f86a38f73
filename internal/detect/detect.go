// Package detect classifies an arbitrary text blob into one of six
// content-type classes using ordered regex probes. Detection is total:
// every input maps to exactly one class, and ties resolve by probe
// order (diff, stacktrace, logs, config, code, generic).
package detect

import (
	"encoding/json"
	"path/filepath"
	"regexp"
	"strings"
)

// Type is one of the six content-type classes the core recognizes.
type Type string

const (
	TypeCode       Type = "code"
	TypeLogs       Type = "logs"
	TypeStacktrace Type = "stacktrace"
	TypeDiff       Type = "diff"
	TypeConfig     Type = "config"
	TypeGeneric    Type = "generic"
)

var (
	diffGitHeader  = regexp.MustCompile(`(?m)^diff --git `)
	diffHunkHeader = regexp.MustCompile(`(?m)^@@ -`)
	diffOldNew     = regexp.MustCompile(`(?m)^(\+\+\+ |--- )`)

	stackJSFrame   = regexp.MustCompile(`(?m)^\s+at\s+`)
	stackPyTrace   = regexp.MustCompile(`Traceback \(most recent call last\):`)
	stackRustPanic = regexp.MustCompile(`thread '[^']*' panicked at`)
	stackGoRoutine = regexp.MustCompile(`goroutine \d+ \[`)

	logBracketLevel = regexp.MustCompile(`(?i)\[(INFO|WARN|WARNING|ERROR|DEBUG|TRACE|FATAL)\]`)
	logISOTimestamp = regexp.MustCompile(`\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}`)
	logSyslogStamp  = regexp.MustCompile(`(?m)^[A-Z][a-z]{2}\s+\d{1,2}\s+\d{2}:\d{2}:\d{2}`)

	configKeyLine = regexp.MustCompile(`(?m)^[\w-]+:\s`)

	codeKeyword = regexp.MustCompile(`\b(function|class|def |fn |import |package )\b`)
)

// Detect classifies a blob. The optional path, when non-empty, is used
// to resolve a code class by file extension before falling back to
// keyword heuristics.
func Detect(content, path string) Type {
	if isDiff(content) {
		return TypeDiff
	}
	if isStacktrace(content) {
		return TypeStacktrace
	}
	if isLogs(content) {
		return TypeLogs
	}
	if isConfig(content) {
		return TypeConfig
	}
	if isCode(content, path) {
		return TypeCode
	}
	return TypeGeneric
}

func isDiff(content string) bool {
	if diffGitHeader.MatchString(content) || diffHunkHeader.MatchString(content) {
		return true
	}
	return diffOldNew.MatchString(content) && strings.Contains(content, "\n")
}

func isStacktrace(content string) bool {
	return stackJSFrame.MatchString(content) ||
		stackPyTrace.MatchString(content) ||
		stackRustPanic.MatchString(content) ||
		stackGoRoutine.MatchString(content)
}

func isLogs(content string) bool {
	if logBracketLevel.MatchString(content) {
		return true
	}
	lines := nonEmptyLines(content)
	if len(lines) == 0 {
		return false
	}
	matches := 0
	for _, l := range lines {
		if logISOTimestamp.MatchString(l) || logSyslogStamp.MatchString(l) {
			matches++
		}
	}
	return float64(matches)/float64(len(lines)) >= 0.2
}

func isConfig(content string) bool {
	trimmed := strings.TrimSpace(content)
	if trimmed != "" && (trimmed[0] == '{' || trimmed[0] == '[') {
		var v any
		if json.Unmarshal([]byte(trimmed), &v) == nil {
			return true
		}
	}
	lines := nonEmptyLines(content)
	if len(lines) == 0 {
		return false
	}
	matches := 0
	for _, l := range lines {
		if configKeyLine.MatchString(l) {
			matches++
		}
	}
	return float64(matches)/float64(len(lines)) >= 0.5
}

var codeExtensions = map[string]bool{
	".ts": true, ".tsx": true, ".js": true, ".jsx": true, ".mjs": true, ".cjs": true,
	".py": true, ".go": true, ".rs": true, ".php": true, ".swift": true,
	".java": true, ".c": true, ".h": true, ".cpp": true, ".hpp": true, ".rb": true,
}

func isCode(content, path string) bool {
	if path != "" && codeExtensions[strings.ToLower(filepath.Ext(path))] {
		return true
	}
	return codeKeyword.MatchString(content)
}

func nonEmptyLines(content string) []string {
	raw := strings.Split(content, "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

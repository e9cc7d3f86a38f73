// Package builderr parses compiler/linter output into deduplicated
// ErrorGroups. Each recognized toolchain has its own regex recognizer;
// detection misses fall through to the generic parser, which never
// fails.
package builderr

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/compresr/optiflow/internal/model"
)

// ParsedError is one raw finding before grouping.
type ParsedError struct {
	Code     string
	Message  string
	Severity model.Severity
	File     string
	Line     int
	Raw      string
}

// Toolchain identifies which recognizer produced a ParsedError.
type Toolchain string

const (
	ToolchainTSC      Toolchain = "tsc"
	ToolchainESLint   Toolchain = "eslint"
	ToolchainBundler  Toolchain = "bundler" // webpack/vite/esbuild
	ToolchainRust     Toolchain = "rustc"
	ToolchainGo       Toolchain = "go"
	ToolchainGeneric  Toolchain = "generic"
)

var (
	tscLine     = regexp.MustCompile(`^(?P<file>[^(]+)\((?P<line>\d+),\d+\): (?P<sev>error|warning) (?P<code>TS\d+): (?P<msg>.+)$`)
	eslintLine  = regexp.MustCompile(`^\s*(?P<line>\d+):\d+\s+(?P<sev>error|warning)\s+(?P<msg>.+?)\s+(?P<code>[\w-]+/[\w-]+|[\w-]+)$`)
	bundlerLine = regexp.MustCompile(`(?i)(error|warning)\s+in\s+(?P<file>[^\s:]+)`)
	rustLine    = regexp.MustCompile(`^(?P<sev>error|warning)(\[(?P<code>E\d+)\])?: (?P<msg>.+)\n\s*-->\s*(?P<file>[^:]+):(?P<line>\d+):\d+`)
	goLine      = regexp.MustCompile(`^(?P<file>[^:]+\.go):(?P<line>\d+)(:\d+)?: (?P<msg>.+)$`)
)

// Parse dispatches to the recognizer for toolchain and falls back to
// the generic line-oriented parser when the hint is empty or unknown.
func Parse(output string, toolchain Toolchain) []ParsedError {
	switch toolchain {
	case ToolchainTSC:
		return parseTSC(output)
	case ToolchainESLint:
		return parseESLint(output)
	case ToolchainBundler:
		return parseBundler(output)
	case ToolchainRust:
		return parseRust(output)
	case ToolchainGo:
		return parseGo(output)
	default:
		return parseGeneric(output)
	}
}

func parseTSC(output string) []ParsedError {
	var out []ParsedError
	for _, line := range strings.Split(output, "\n") {
		m := tscLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ln, _ := strconv.Atoi(m[tscLine.SubexpIndex("line")])
		out = append(out, ParsedError{
			Code:     m[tscLine.SubexpIndex("code")],
			Message:  m[tscLine.SubexpIndex("msg")],
			Severity: severityOf(m[tscLine.SubexpIndex("sev")]),
			File:     strings.TrimSpace(m[tscLine.SubexpIndex("file")]),
			Line:     ln,
			Raw:      line,
		})
	}
	if out == nil {
		return parseGeneric(output)
	}
	return out
}

func parseESLint(output string) []ParsedError {
	var out []ParsedError
	currentFile := "unknown"
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.Contains(trimmed, " error ") && !strings.Contains(trimmed, " warning ") &&
			!regexp.MustCompile(`^\d`).MatchString(trimmed) {
			currentFile = trimmed
			continue
		}
		m := eslintLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ln, _ := strconv.Atoi(m[eslintLine.SubexpIndex("line")])
		out = append(out, ParsedError{
			Code:     m[eslintLine.SubexpIndex("code")],
			Message:  strings.TrimSpace(m[eslintLine.SubexpIndex("msg")]),
			Severity: severityOf(m[eslintLine.SubexpIndex("sev")]),
			File:     currentFile,
			Line:     ln,
			Raw:      line,
		})
	}
	if out == nil {
		return parseGeneric(output)
	}
	return out
}

func parseBundler(output string) []ParsedError {
	var out []ParsedError
	for _, block := range strings.Split(output, "\n\n") {
		m := bundlerLine.FindStringSubmatch(block)
		if m == nil {
			continue
		}
		out = append(out, ParsedError{
			Message:  strings.TrimSpace(firstLine(block)),
			Severity: severityOf(strings.ToLower(m[1])),
			File:     m[bundlerLine.SubexpIndex("file")],
			Line:     0,
			Raw:      block,
		})
	}
	if out == nil {
		return parseGeneric(output)
	}
	return out
}

func parseRust(output string) []ParsedError {
	var out []ParsedError
	for _, block := range strings.Split(output, "\n\n") {
		m := rustLine.FindStringSubmatch(block)
		if m == nil {
			continue
		}
		ln, _ := strconv.Atoi(m[rustLine.SubexpIndex("line")])
		out = append(out, ParsedError{
			Code:     m[rustLine.SubexpIndex("code")],
			Message:  m[rustLine.SubexpIndex("msg")],
			Severity: severityOf(m[rustLine.SubexpIndex("sev")]),
			File:     strings.TrimSpace(m[rustLine.SubexpIndex("file")]),
			Line:     ln,
			Raw:      block,
		})
	}
	if out == nil {
		return parseGeneric(output)
	}
	return out
}

func parseGo(output string) []ParsedError {
	var out []ParsedError
	for _, line := range strings.Split(output, "\n") {
		m := goLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ln, _ := strconv.Atoi(m[goLine.SubexpIndex("line")])
		out = append(out, ParsedError{
			Message:  m[goLine.SubexpIndex("msg")],
			Severity: model.SeverityError,
			File:     m[goLine.SubexpIndex("file")],
			Line:     ln,
			Raw:      line,
		})
	}
	if out == nil {
		return parseGeneric(output)
	}
	return out
}

// parseGeneric never fails: malformed location lines become
// file="unknown", line=0.
func parseGeneric(output string) []ParsedError {
	var out []ParsedError
	keyword := regexp.MustCompile(`(?i)\b(error|fail|fatal|warn(ing)?)\b`)
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" || !keyword.MatchString(line) {
			continue
		}
		sev := model.SeverityWarning
		if regexp.MustCompile(`(?i)error|fail|fatal`).MatchString(line) {
			sev = model.SeverityError
		}
		out = append(out, ParsedError{
			Message:  strings.TrimSpace(line),
			Severity: sev,
			File:     "unknown",
			Line:     0,
			Raw:      line,
		})
	}
	return out
}

func severityOf(s string) model.Severity {
	if strings.EqualFold(s, "warning") || strings.EqualFold(s, "warn") {
		return model.SeverityWarning
	}
	return model.SeverityError
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

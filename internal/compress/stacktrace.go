package compress

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/compresr/optiflow/internal/model"
)

var (
	internalFrameRe = regexp.MustCompile(`node_modules|internal/|<anonymous>|webpack:|site-packages|/usr/lib/`)
	projectFrameRe  = regexp.MustCompile(`/(src|app|lib|pages|components|utils|services|hooks|store)/|\.(go|py|rs|java|ts|tsx|js|jsx)(:|$|\b)`)
)

type stackDialect string

const (
	dialectJS      stackDialect = "javascript"
	dialectPython  stackDialect = "python"
	dialectRust    stackDialect = "rust"
	dialectGo      stackDialect = "go"
	dialectJava    stackDialect = "java"
	dialectGeneric stackDialect = "generic"
)

var (
	jsFrameRe     = regexp.MustCompile(`^\s*at\s+.+\(.+:\d+:\d+\)`)
	pyFrameRe     = regexp.MustCompile(`^\s*File "[^"]+", line \d+`)
	rustPanicRe   = regexp.MustCompile(`^thread '.*' panicked at`)
	goFrameRe     = regexp.MustCompile(`^goroutine \d+ \[.*\]:`)
	javaFrameRe   = regexp.MustCompile(`^\s*at [\w.$]+\([\w.]+\.java:\d+\)`)
)

func detectDialect(lines []string) stackDialect {
	for _, l := range lines {
		switch {
		case jsFrameRe.MatchString(l):
			return dialectJS
		case pyFrameRe.MatchString(l):
			return dialectPython
		case rustPanicRe.MatchString(l):
			return dialectRust
		case goFrameRe.MatchString(l):
			return dialectGo
		case javaFrameRe.MatchString(l):
			return dialectJava
		}
	}
	return dialectGeneric
}

func isFrameLine(dialect stackDialect, l string) bool {
	switch dialect {
	case dialectJS:
		return jsFrameRe.MatchString(l)
	case dialectPython:
		return pyFrameRe.MatchString(l)
	case dialectRust:
		return strings.Contains(l, " at ")
	case dialectGo:
		return strings.HasPrefix(strings.TrimSpace(l), "/") || regexp.MustCompile(`\.go:\d+`).MatchString(l)
	case dialectJava:
		return javaFrameRe.MatchString(l)
	default:
		return projectFrameRe.MatchString(l) || internalFrameRe.MatchString(l)
	}
}

// Stacktrace detects the trace dialect, classifies each frame as
// internal or project, emits project frames verbatim, and coalesces
// runs of internal frames into an omitted-count marker (keeping up to
// three per run when detail is detailed).
func Stacktrace(content string, opts Options) model.CompressedResult {
	lines := splitLines(content)
	dialect := detectDialect(lines)

	keepPerRun := 0
	if opts.Detail == DetailDetailed {
		keepPerRun = 3
	}

	var out []string
	i := 0
	for i < len(lines) {
		line := lines[i]
		if !isFrameLine(dialect, line) || opts.preserved(line) {
			out = append(out, line)
			i++
			continue
		}
		if internalFrameRe.MatchString(line) {
			j := i
			var run []string
			for j < len(lines) && isFrameLine(dialect, lines[j]) &&
				internalFrameRe.MatchString(lines[j]) {
				run = append(run, lines[j])
				j++
			}
			for k := 0; k < keepPerRun && k < len(run); k++ {
				out = append(out, run[k])
			}
			remaining := len(run) - keepPerRun
			if remaining > 0 {
				out = append(out, fmt.Sprintf("    … (%d internal frames omitted)", remaining))
			}
			i = j
			continue
		}
		out = append(out, line)
		i++
	}

	compressed := strings.Join(out, "\n")
	return buildResult(content, compressed, "stacktrace")
}

package compress

import (
	"fmt"
	"strings"

	"github.com/compresr/optiflow/internal/model"
	"github.com/compresr/optiflow/internal/tokencount"
)

// Generic groups lines sharing a normalized form (digits->N, hex->HASH,
// whitespace collapsed) into a representative line plus an omitted
// count; error/warning-keyword lines and preserved-pattern lines
// bypass grouping. Consecutive duplicate raw lines additionally
// collapse into a repeat marker.
func Generic(content string, opts Options) model.CompressedResult {
	lines := splitLines(content)
	threshold := opts.groupThreshold()

	collapsed := collapseConsecutiveDuplicates(lines)

	type group struct {
		rep   string
		count int
		order int
	}
	groups := map[string]*group{}
	var orderedKeys []string
	var out []string

	bypass := func(line string) bool {
		return opts.Detail == DetailDetailed || opts.preserved(line) || errorKeyword.MatchString(line)
	}

	for _, line := range collapsed {
		if bypass(line) {
			out = append(out, line)
			continue
		}
		norm := normalizeGeneric(line)
		g, ok := groups[norm]
		if !ok {
			g = &group{rep: line, order: len(out)}
			groups[norm] = g
			orderedKeys = append(orderedKeys, norm)
			out = append(out, "") // placeholder, filled below
		}
		g.count++
	}

	// Second pass: render groups in first-seen order, replacing
	// placeholders with either the bare representative or the
	// representative plus an omitted-count suffix.
	final := make([]string, 0, len(out))
	rendered := map[string]bool{}
	idx := 0
	for _, line := range collapsed {
		if bypass(line) {
			final = append(final, line)
			idx++
			continue
		}
		norm := normalizeGeneric(line)
		g := groups[norm]
		if rendered[norm] {
			idx++
			continue
		}
		rendered[norm] = true
		if g.count >= threshold {
			final = append(final, fmt.Sprintf("%s … (%d similar lines omitted)", g.rep, g.count-1))
		} else {
			final = append(final, g.rep)
		}
		idx++
	}

	compressed := strings.Join(final, "\n")
	return buildResult(content, compressed, "generic")
}

func collapseConsecutiveDuplicates(lines []string) []string {
	var out []string
	i := 0
	for i < len(lines) {
		j := i + 1
		for j < len(lines) && lines[j] == lines[i] {
			j++
		}
		run := j - i
		if run >= 3 {
			out = append(out, fmt.Sprintf("%s … (repeated %d more times)", lines[i], run-1))
		} else {
			for k := 0; k < run; k++ {
				out = append(out, lines[i])
			}
		}
		i = j
	}
	return out
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

func buildResult(original, compressed, technique string) model.CompressedResult {
	stats := model.NewCompressionStats(
		len(splitLines(original)),
		len(splitLines(compressed)),
		tokencount.Count(original),
		tokencount.Count(compressed),
		technique,
	)
	return model.CompressedResult{Compressed: compressed, Stats: stats}
}

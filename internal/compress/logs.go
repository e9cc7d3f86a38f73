package compress

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/compresr/optiflow/internal/model"
)

var logLineRe = regexp.MustCompile(`(?i)\[?(error|warn(?:ing)?|info|debug)\]?`)

func levelOf(line string) string {
	m := logLineRe.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	lvl := strings.ToLower(m[1])
	if strings.HasPrefix(lvl, "warn") {
		return "warning"
	}
	return lvl
}

// Logs groups log lines by normalized message, ordering errors first,
// then warnings, then by count descending. At non-minimal detail, a
// summary block counting each level and the unique pattern count is
// appended.
func Logs(content string, opts Options) model.CompressedResult {
	lines := splitLines(content)

	type group struct {
		rep   string
		level string
		count int
	}
	order := []string{}
	groups := map[string]*group{}
	counts := map[string]int{}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lvl := levelOf(line)
		counts[lvl]++
		if opts.preserved(line) {
			key := "preserve:" + line
			groups[key] = &group{rep: line, level: lvl, count: 1}
			order = append(order, key)
			continue
		}
		norm := normalizeLog(line)
		g, ok := groups[norm]
		if !ok {
			g = &group{rep: line, level: lvl}
			groups[norm] = g
			order = append(order, norm)
		}
		g.count++
	}

	rank := func(level string) int {
		switch level {
		case "error":
			return 0
		case "warning":
			return 1
		default:
			return 2
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		gi, gj := groups[order[i]], groups[order[j]]
		if rank(gi.level) != rank(gj.level) {
			return rank(gi.level) < rank(gj.level)
		}
		return gi.count > gj.count
	})

	var out []string
	for _, k := range order {
		g := groups[k]
		if g.count > 1 {
			out = append(out, fmt.Sprintf("%s … (%d similar lines omitted)", g.rep, g.count-1))
		} else {
			out = append(out, g.rep)
		}
	}

	if opts.Detail != DetailMinimal {
		out = append(out, "", fmt.Sprintf(
			"Summary: %d errors, %d warnings, %d info, %d unique patterns",
			counts["error"], counts["warning"], counts["info"], len(order)))
	}

	compressed := strings.Join(out, "\n")
	return buildResult(content, compressed, "logs")
}

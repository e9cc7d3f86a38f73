package compress

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/compresr/optiflow/internal/model"
)

// TruncateStringField rewrites a single string field at path in a JSON
// document to its first 100 characters plus an ellipsis, without
// re-marshaling the whole document.
func TruncateStringField(jsonDoc, path string) (string, error) {
	v := gjson.Get(jsonDoc, path)
	if v.Type != gjson.String || len(v.String()) <= 100 {
		return jsonDoc, nil
	}
	return sjson.Set(jsonDoc, path, v.String()[:100]+"...")
}

func maxDepth(detail Detail) int {
	switch detail {
	case DetailMinimal:
		return 1
	case DetailDetailed:
		return 3
	default:
		return 2
	}
}

func maxIndent(detail Detail) int {
	switch detail {
	case DetailMinimal:
		return 2
	case DetailDetailed:
		return 6
	default:
		return 4
	}
}

// Config summarizes JSON (via gjson's Array/Map views) or YAML-like
// indented content recursively: at the configured max depth, arrays
// collapse to "[N items]" and objects to "{N keys}"; long strings
// truncate at 100 characters; large arrays keep two samples plus a
// "… (N more items)" marker.
func Config(content string, opts Options) model.CompressedResult {
	trimmed := strings.TrimSpace(content)
	var compressed string
	if gjson.Valid(trimmed) && (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) {
		compressed = summarizeJSON(gjson.Parse(trimmed), 0, maxDepth(opts.Detail))
	} else {
		compressed = summarizeYAMLish(content, maxIndent(opts.Detail))
	}
	return buildResult(content, compressed, "config")
}

func summarizeJSON(v gjson.Result, depth, max int) string {
	switch {
	case v.IsArray():
		items := v.Array()
		if depth >= max {
			return fmt.Sprintf("[%d items]", len(items))
		}
		var parts []string
		n := len(items)
		if n <= 2 {
			for _, it := range items {
				parts = append(parts, summarizeJSON(it, depth+1, max))
			}
		} else {
			parts = append(parts, summarizeJSON(items[0], depth+1, max))
			parts = append(parts, summarizeJSON(items[1], depth+1, max))
			parts = append(parts, fmt.Sprintf("… (%d more items)", n-2))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case v.IsObject():
		m := v.Map()
		if depth >= max {
			return fmt.Sprintf("{%d keys}", len(m))
		}
		var parts []string
		for k, val := range m {
			parts = append(parts, fmt.Sprintf("%q: %s", k, summarizeJSON(val, depth+1, max)))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case v.Type == gjson.String:
		s := v.String()
		if len(s) > 100 {
			return fmt.Sprintf("%q", s[:100]+"...")
		}
		return fmt.Sprintf("%q", s)
	default:
		return v.Raw
	}
}

// summarizeYAMLish depth-limits YAML-like content by indentation,
// emitting a nested-items marker once the configured indent width is
// exceeded.
func summarizeYAMLish(content string, maxIndentSpaces int) string {
	lines := splitLines(content)
	var out []string
	skipping := false
	skipCount := 0
	skipIndent := -1

	flushSkip := func() {
		if skipping {
			out = append(out, fmt.Sprintf("%s… (%d nested items)", strings.Repeat(" ", skipIndent), skipCount))
			skipping = false
			skipCount = 0
		}
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " "))
		if indent > maxIndentSpaces {
			if !skipping {
				skipping = true
				skipIndent = maxIndentSpaces
			}
			skipCount++
			continue
		}
		flushSkip()
		out = append(out, line)
	}
	flushSkip()
	return strings.Join(out, "\n")
}

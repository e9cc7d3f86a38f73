// Package logsummary turns raw log blobs into a structured summary:
// per-entry scoring, CFTL template extraction, and single-linkage
// clustering of similar messages.
package logsummary

import (
	"regexp"
	"strings"
	"time"

	"github.com/compresr/optiflow/internal/model"
)

var (
	logTimestampRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:?\d{2})?`)
	logLevelRe     = regexp.MustCompile(`(?i)\[?(error|warn(?:ing)?|info|debug)\]?`)
)

// ParseEntries splits a log blob into timestamp/level/message records.
func ParseEntries(content string) []model.LogEntry {
	var out []model.LogEntry
	for _, line := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		e := model.LogEntry{Raw: line}
		if ts := logTimestampRe.FindString(line); ts != "" {
			if t, err := parseAnyTimestamp(ts); err == nil {
				e.Timestamp = t
				e.HasTime = true
			}
		}
		if m := logLevelRe.FindStringSubmatch(line); m != nil {
			lvl := strings.ToLower(m[1])
			if strings.HasPrefix(lvl, "warn") {
				lvl = "warning"
			}
			e.Level = lvl
		}
		e.Message = extractMessage(line)
		out = append(out, e)
	}
	return out
}

func extractMessage(line string) string {
	msg := logTimestampRe.ReplaceAllString(line, "")
	msg = logLevelRe.ReplaceAllString(msg, "")
	return strings.TrimSpace(msg)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
}

func parseAnyTimestamp(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

package logsummary

import (
	"regexp"
	"strings"

	"github.com/compresr/optiflow/internal/model"
)

var (
	uuidRe      = regexp.MustCompile(`(?i)\b[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\b`)
	ipVarRe     = regexp.MustCompile(`\b\d{1,3}(\.\d{1,3}){3}\b`)
	hashVarRe   = regexp.MustCompile(`\b[0-9a-fA-F]{6,}\b`)
	pathVarRe   = regexp.MustCompile(`(?:/[\w.\-]+){2,}`)
	urlVarRe    = regexp.MustCompile(`https?://[^\s]+`)
	emailVarRe  = regexp.MustCompile(`\b[\w.\-]+@[\w.\-]+\.\w+\b`)
	stringVarRe = regexp.MustCompile(`'[^']*'|"[^"]*"`)
	numVarRe    = regexp.MustCompile(`\d+`)
	wsVarRe     = regexp.MustCompile(`\s+`)
)

// normalizeVars substitutes variable-looking spans in the CFTL order:
// UUID, IP, HASH, TIMESTAMP, PATH, URL, EMAIL, STRING, NUM.
func normalizeVars(s string) string {
	s = uuidRe.ReplaceAllString(s, "<UUID>")
	s = ipVarRe.ReplaceAllString(s, "<IP>")
	s = hashVarRe.ReplaceAllString(s, "<HASH>")
	s = logTimestampRe.ReplaceAllString(s, "<TIMESTAMP>")
	s = pathVarRe.ReplaceAllString(s, "<PATH>")
	s = urlVarRe.ReplaceAllString(s, "<URL>")
	s = emailVarRe.ReplaceAllString(s, "<EMAIL>")
	s = stringVarRe.ReplaceAllString(s, "<STRING>")
	s = numVarRe.ReplaceAllString(s, "<NUM>")
	return strings.TrimSpace(wsVarRe.ReplaceAllString(s, " "))
}

func firstMeaningfulToken(msg string) string {
	fields := strings.Fields(msg)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func countVariables(template string) int {
	return strings.Count(template, "<")
}

// ExtractPatterns buckets entries by (first meaningful token, message
// length / 50), replaces variables within each bucket, and merges
// entries sharing a resulting template into one LogPattern.
func ExtractPatterns(entries []model.LogEntry) []model.LogPattern {
	type bucketKey struct {
		token string
		lenBucket int
	}
	buckets := map[bucketKey][]int{}
	for i, e := range entries {
		key := bucketKey{token: firstMeaningfulToken(e.Message), lenBucket: len(e.Message) / 50}
		buckets[key] = append(buckets[key], i)
	}

	type accum struct {
		pattern model.LogPattern
		count   int
	}
	byTemplate := map[string]*accum{}
	var order []string

	for _, idxs := range buckets {
		for _, i := range idxs {
			e := entries[i]
			template := normalizeVars(e.Message)
			a, ok := byTemplate[template]
			if !ok {
				a = &accum{pattern: model.LogPattern{Template: template, Level: e.Level}}
				byTemplate[template] = a
				order = append(order, template)
			}
			a.count++
			a.pattern.Count++
			if e.HasTime {
				if a.pattern.First.IsZero() || e.Timestamp.Before(a.pattern.First) {
					a.pattern.First = e.Timestamp
				}
				if a.pattern.Last.IsZero() || e.Timestamp.After(a.pattern.Last) {
					a.pattern.Last = e.Timestamp
				}
				a.pattern.HasTime = true
			}
			if len(a.pattern.Examples) < 3 {
				a.pattern.Examples = append(a.pattern.Examples, e.Raw)
			}
		}
	}

	maxCount := 0
	for _, a := range byTemplate {
		if a.pattern.Count > maxCount {
			maxCount = a.pattern.Count
		}
	}

	out := make([]model.LogPattern, 0, len(order))
	for _, template := range order {
		a := byTemplate[template]
		frequency := float64(a.pattern.Count) / float64(len(entries))
		rarity := 1.0
		if maxCount > 0 {
			rarity = 1 - float64(a.pattern.Count)/float64(maxCount)
		}
		anomalyBoost := 0.0
		if rarity > 0.5 && (a.pattern.Level == "error" || a.pattern.Level == "warning") {
			anomalyBoost = 0.3
		}
		varPenalty := float64(countVariables(a.pattern.Template)) * 0.05
		importance := frequency*0.4 + rarity*0.3 + anomalyBoost - varPenalty
		if importance < 0 {
			importance = 0
		}
		if importance > 1 {
			importance = 1
		}
		a.pattern.Importance = importance
		out = append(out, a.pattern)
	}
	return out
}

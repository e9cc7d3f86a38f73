package logsummary

import (
	"fmt"

	"github.com/compresr/optiflow/internal/model"
)

// Options configures the end-to-end summarizer pipeline.
type Options struct {
	Weights     ScoreWeights
	Method      SimilarityMethod
	Threshold   float64
	MaxClusters int
}

// DefaultOptions gives every weight and threshold a sane, documented
// default so callers rarely need to construct Options by hand.
var DefaultOptions = Options{Weights: DefaultWeights, Method: SimilarityLevenshtein, Threshold: 0.7, MaxClusters: 100}

// Summarize parses content into entries, extracts CFTL patterns, and
// builds a LogSummary: error and warning patterns are grouped by level,
// and any other pattern with importance of at least 0.6 becomes a key
// event. It does not run the per-entry scorer or the clustering pass,
// so opts.Weights, opts.Method, opts.Threshold and opts.MaxClusters do
// not change the result.
func Summarize(content string, opts Options) model.LogSummary {
	entries := ParseEntries(content)
	if opts.Weights == (ScoreWeights{}) {
		opts.Weights = DefaultWeights
	}
	if opts.Method == "" {
		opts.Method = SimilarityLevenshtein
	}
	if opts.Threshold == 0 {
		opts.Threshold = 0.7
	}

	patterns := ExtractPatterns(entries)

	stats := buildStatistics(entries)

	var errors, warnings, keyEvents []model.LogPattern
	for _, p := range patterns {
		switch p.Level {
		case "error":
			errors = append(errors, p)
		case "warning":
			warnings = append(warnings, p)
		default:
			if p.Importance >= 0.6 {
				keyEvents = append(keyEvents, p)
			}
		}
	}

	overview := fmt.Sprintf("%d entries, %d errors, %d warnings, %d patterns",
		len(entries), stats.CountsByLevel["error"], stats.CountsByLevel["warning"], len(patterns))

	return model.LogSummary{
		Overview:   overview,
		Errors:     errors,
		Warnings:   warnings,
		KeyEvents:  keyEvents,
		Statistics: stats,
	}
}

func buildStatistics(entries []model.LogEntry) model.LogStatistics {
	stats := model.LogStatistics{CountsByLevel: map[string]int{}}
	for _, e := range entries {
		if e.Level != "" {
			stats.CountsByLevel[e.Level]++
		}
		if e.HasTime {
			if !stats.HasSpan || e.Timestamp.Before(stats.SpanStart) {
				stats.SpanStart = e.Timestamp
				stats.HasSpan = true
			}
			if !stats.HasSpan || e.Timestamp.After(stats.SpanEnd) {
				stats.SpanEnd = e.Timestamp
			}
		}
	}
	return stats
}

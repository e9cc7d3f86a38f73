package logsummary

import (
	"strings"

	"github.com/compresr/optiflow/internal/model"
	"github.com/compresr/optiflow/internal/tfidf"
)

// ScoreWeights are the four sub-score weights, defaulting to
// 0.3/0.3/0.2/0.2.
type ScoreWeights struct {
	Level    float64
	TFIDF    float64
	Position float64
	Rarity   float64
}

// DefaultWeights is the default 0.3/0.3/0.2/0.2 combination.
var DefaultWeights = ScoreWeights{Level: 0.3, TFIDF: 0.3, Position: 0.2, Rarity: 0.2}

func levelScore(level string) float64 {
	switch level {
	case "error":
		return 1.0
	case "warning":
		return 0.7
	case "info":
		return 0.3
	case "debug":
		return 0.1
	default:
		return 0.0
	}
}

// positionScore is U-shaped: boosted for the first and last boundary
// entries of the slice.
func positionScore(index, total, boundary int) float64 {
	if total <= 1 {
		return 1.0
	}
	if index < boundary || index >= total-boundary {
		return 1.0
	}
	mid := float64(total-1) / 2
	dist := absFloat(float64(index) - mid)
	return dist / mid
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// Score computes the four sub-scores and their weighted combination,
// clamped to [0,1], for every entry in entries.
func Score(entries []model.LogEntry, weights ScoreWeights, boundary int) []float64 {
	n := len(entries)
	scores := make([]float64, n)
	if n == 0 {
		return scores
	}

	messages := make([]string, n)
	for i, e := range entries {
		messages[i] = e.Message
	}
	tfidfScores := tfidf.Scores(messages)

	normCounts := map[string]int{}
	normKeys := make([]string, n)
	for i, e := range entries {
		k := placeholderize(e.Message)
		normKeys[i] = k
		normCounts[k]++
	}
	maxFreq := 0
	for _, c := range normCounts {
		if c > maxFreq {
			maxFreq = c
		}
	}

	if boundary <= 0 {
		boundary = 5
	}

	for i, e := range entries {
		rarity := 0.0
		if maxFreq > 0 {
			rarity = 1 - float64(normCounts[normKeys[i]])/float64(maxFreq)
		}
		combined := weights.Level*levelScore(e.Level) +
			weights.TFIDF*tfidfScores[i] +
			weights.Position*positionScore(i, n, boundary) +
			weights.Rarity*rarity
		if combined < 0 {
			combined = 0
		}
		if combined > 1 {
			combined = 1
		}
		scores[i] = combined
	}
	return scores
}

func placeholderize(msg string) string {
	return strings.TrimSpace(normalizeVars(msg))
}

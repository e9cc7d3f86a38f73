package tfidf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScoresInRange(t *testing.T) {
	docs := []string{
		"the quick brown fox",
		"the quick brown fox",
		"a wildly unusual rare vocabulary appears here",
	}
	scores := Scores(docs)
	require.Len(t, scores, 3)
	for _, s := range scores {
		require.GreaterOrEqual(t, s, 0.0)
		require.LessOrEqual(t, s, 1.0)
	}
	require.Greater(t, scores[2], scores[0])
}

func TestScoresEmptyCollection(t *testing.T) {
	require.Empty(t, Scores(nil))
}

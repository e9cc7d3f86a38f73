package logsummary

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEntriesExtractsLevelAndTime(t *testing.T) {
	content := "2026-01-02T03:04:05Z [ERROR] disk full on /dev/sda1\n"
	entries := ParseEntries(content)
	require.Len(t, entries, 1)
	require.Equal(t, "error", entries[0].Level)
	require.True(t, entries[0].HasTime)
}

func TestScoreClampedToUnitRange(t *testing.T) {
	entries := ParseEntries("[ERROR] a\n[INFO] b\n[DEBUG] c\n")
	scores := Score(entries, DefaultWeights, 5)
	require.Len(t, scores, 3)
	for _, s := range scores {
		require.GreaterOrEqual(t, s, 0.0)
		require.LessOrEqual(t, s, 1.0)
	}
}

func TestExtractPatternsMergesSimilarMessages(t *testing.T) {
	content := `[ERROR] failed to connect to host 10.0.0.1
[ERROR] failed to connect to host 10.0.0.2
[ERROR] failed to connect to host 10.0.0.3
`
	entries := ParseEntries(content)
	patterns := ExtractPatterns(entries)
	require.Len(t, patterns, 1)
	require.Equal(t, 3, patterns[0].Count)
	require.Contains(t, patterns[0].Template, "<IP>")
}

func TestSingleLinkageClusterGroupsSimilarMessages(t *testing.T) {
	entries := ParseEntries("[ERROR] connection refused to db-1\n[ERROR] connection refused to db-2\n[INFO] startup complete\n")
	scores := Score(entries, DefaultWeights, 5)
	clusters := SingleLinkageCluster(entries, scores, SimilarityLevenshtein, 0.7)
	require.NotEmpty(t, clusters)
	require.Equal(t, clusters[0].Importance >= clusters[len(clusters)-1].Importance, true)
}

func TestSummarizeProducesOverview(t *testing.T) {
	content := "[ERROR] disk full\n[WARN] low memory\n[INFO] ready\n"
	summary := Summarize(content, DefaultOptions)
	require.Contains(t, summary.Overview, "entries")
	require.NotEmpty(t, summary.Errors)
}

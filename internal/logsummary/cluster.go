package logsummary

import (
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/compresr/optiflow/internal/model"
)

// SimilarityMethod selects the single-linkage distance measure.
type SimilarityMethod string

const (
	SimilarityLevenshtein SimilarityMethod = "levenshtein"
	SimilarityJaccard     SimilarityMethod = "jaccard"
)

// Cluster is one single-linkage group of similar log entries.
type Cluster struct {
	Pattern        string
	Entries        []model.LogEntry
	Representative model.LogEntry
	DominantLevel  string
	Importance     float64
}

func levenshteinSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	score, err := edlib.StringsSimilarity(a, b, edlib.Levenshtein)
	if err != nil {
		return 0.0
	}
	return float64(score)
}

func jaccardSimilarity(a, b string) float64 {
	wa := strings.Fields(a)
	wb := strings.Fields(b)
	if len(wa) == 0 && len(wb) == 0 {
		return 1.0
	}
	setA := map[string]bool{}
	for _, w := range wa {
		setA[w] = true
	}
	setB := map[string]bool{}
	for _, w := range wb {
		setB[w] = true
	}
	inter := 0
	union := map[string]bool{}
	for w := range setA {
		union[w] = true
		if setB[w] {
			inter++
		}
	}
	for w := range setB {
		union[w] = true
	}
	if len(union) == 0 {
		return 1.0
	}
	return float64(inter) / float64(len(union))
}

func similarity(method SimilarityMethod, a, b string) float64 {
	if method == SimilarityJaccard {
		return jaccardSimilarity(a, b)
	}
	return levenshteinSimilarity(a, b)
}

// SingleLinkageCluster groups entries using single-linkage clustering
// over normalized messages: an entry joins a cluster if it is
// sufficiently similar (above threshold) to at least one member
// already in it.
func SingleLinkageCluster(entries []model.LogEntry, scores []float64, method SimilarityMethod, threshold float64) []Cluster {
	if threshold <= 0 {
		threshold = 0.7
	}
	var clusters []*Cluster
	var members [][]int

	for i, e := range entries {
		norm := normalizeVars(e.Message)
		placed := false
		for ci, cl := range clusters {
			for _, mi := range members[ci] {
				if similarity(method, norm, normalizeVars(entries[mi].Message)) >= threshold {
					cl.Entries = append(cl.Entries, e)
					members[ci] = append(members[ci], i)
					placed = true
					break
				}
			}
			if placed {
				break
			}
		}
		if !placed {
			clusters = append(clusters, &Cluster{Pattern: norm, Entries: []model.LogEntry{e}})
			members = append(members, []int{i})
		}
	}

	out := make([]Cluster, 0, len(clusters))
	for ci, cl := range clusters {
		levelCounts := map[string]int{}
		bestIdx, bestScore := members[ci][0], -1.0
		sumScore := 0.0
		for _, mi := range members[ci] {
			levelCounts[entries[mi].Level]++
			if mi < len(scores) && scores[mi] > bestScore {
				bestScore = scores[mi]
				bestIdx = mi
			}
			if mi < len(scores) {
				sumScore += scores[mi]
			}
		}
		dominant := ""
		best := -1
		for lvl, c := range levelCounts {
			if c > best {
				best = c
				dominant = lvl
			}
		}
		avgScore := sumScore / float64(len(members[ci]))
		sizeBonus := float64(len(cl.Entries)) * 0.02
		if sizeBonus > 0.3 {
			sizeBonus = 0.3
		}
		levelBonus := 0.0
		switch dominant {
		case "error":
			levelBonus = 0.2
		case "warning":
			levelBonus = 0.1
		}
		importance := avgScore + sizeBonus + levelBonus
		if importance > 1 {
			importance = 1
		}
		out = append(out, Cluster{
			Pattern:        cl.Pattern,
			Entries:        cl.Entries,
			Representative: entries[bestIdx],
			DominantLevel:  dominant,
			Importance:     importance,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Importance > out[j].Importance })
	return out
}

// ClusterHierarchy repeats clustering at progressively lower
// thresholds to build up to three levels, capping each level at
// maxClusters.
func ClusterHierarchy(entries []model.LogEntry, scores []float64, method SimilarityMethod, maxClusters int) [][]Cluster {
	if maxClusters <= 0 {
		maxClusters = 100
	}
	thresholds := []float64{0.85, 0.7, 0.5}
	var levels [][]Cluster
	for _, th := range thresholds {
		clusters := SingleLinkageCluster(entries, scores, method, th)
		if len(clusters) > maxClusters {
			clusters = clusters[:maxClusters]
		}
		levels = append(levels, clusters)
	}
	return levels
}

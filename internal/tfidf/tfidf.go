// Package tfidf scores documents by distinctiveness of vocabulary
// relative to a collection. It backs both the diff compressor's
// semantic hunk ranking and the log summarizer's per-entry scoring.
package tfidf

import (
	"math"
	"regexp"
	"strings"
)

var tokenRe = regexp.MustCompile(`[A-Za-z0-9_]+`)

func tokenize(doc string) []string {
	return tokenRe.FindAllString(strings.ToLower(doc), -1)
}

// Scores computes a normalized TF-IDF-derived distinctiveness score in
// [0,1] for every document in docs, treating docs as the whole
// collection. Higher means more distinctive vocabulary relative to the
// collection.
func Scores(docs []string) []float64 {
	n := len(docs)
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	tokenized := make([][]string, n)
	df := map[string]int{}
	for i, d := range docs {
		toks := tokenize(d)
		tokenized[i] = toks
		seen := map[string]bool{}
		for _, t := range toks {
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
		}
	}

	raw := make([]float64, n)
	maxRaw := 0.0
	for i, toks := range tokenized {
		if len(toks) == 0 {
			continue
		}
		tf := map[string]int{}
		for _, t := range toks {
			tf[t]++
		}
		score := 0.0
		for t, c := range tf {
			termFreq := float64(c) / float64(len(toks))
			idf := math.Log(float64(n+1)/float64(df[t]+1)) + 1
			score += termFreq * idf
		}
		raw[i] = score
		if score > maxRaw {
			maxRaw = score
		}
	}

	if maxRaw == 0 {
		return out
	}
	for i, s := range raw {
		out[i] = s / maxRaw
	}
	return out
}

// Score scores a single document against the collection it belongs to.
func Score(doc string, collection []string) float64 {
	scores := Scores(collection)
	for i, d := range collection {
		if d == doc {
			return scores[i]
		}
	}
	all := append(append([]string{}, collection...), doc)
	return Scores(all)[len(all)-1]
}

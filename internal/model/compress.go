package model

import "math"

// CompressionStats carries the accounting numbers every compressor
// must report. ReductionPercent is derived, never independently set.
type CompressionStats struct {
	OriginalLines     int
	CompressedLines   int
	OriginalTokens    int
	CompressedTokens  int
	ReductionPercent  int
	Technique         string
}

// NewCompressionStats computes ReductionPercent as
// round(100*(1 - compressedTokens/originalTokens)) when originalTokens
// > 0, else 0.
func NewCompressionStats(origLines, compLines, origTokens, compTokens int, technique string) CompressionStats {
	pct := 0
	if origTokens > 0 {
		pct = int(math.Round(100 * (1 - float64(compTokens)/float64(origTokens))))
	}
	return CompressionStats{
		OriginalLines:    origLines,
		CompressedLines:  compLines,
		OriginalTokens:   origTokens,
		CompressedTokens: compTokens,
		ReductionPercent: pct,
		Technique:        technique,
	}
}

// CompressedResult is the uniform output of every compressor.
type CompressedResult struct {
	Compressed  string
	Stats       CompressionStats
	OmittedInfo string // optional; empty when nothing was omitted
}

package sdk

import (
	"github.com/compresr/optiflow/internal/compress"
	"github.com/compresr/optiflow/internal/detect"
	"github.com/compresr/optiflow/internal/model"
)

// Compress is the `compress` bridge surface: auto, logs, diff,
// semantic, dispatching to internal/compress's per-shape compressors.
type Compress struct{}

// Auto detects content's shape and runs the matching compressor.
func (Compress) Auto(content string, opts compress.Options) model.CompressedResult {
	switch detect.Detect(content, "") {
	case detect.TypeLogs:
		return compress.Logs(content, opts)
	case detect.TypeStacktrace:
		return compress.Stacktrace(content, opts)
	case detect.TypeDiff:
		return compress.Diff(content, compress.DiffHunksOnly, 0, opts)
	case detect.TypeConfig:
		return compress.Config(content, opts)
	default:
		return compress.Generic(content, opts)
	}
}

func (Compress) Logs(content string, opts compress.Options) model.CompressedResult {
	return compress.Logs(content, opts)
}

func (Compress) Diff(content string, opts compress.Options) model.CompressedResult {
	return compress.Diff(content, compress.DiffHunksOnly, 0, opts)
}

func (Compress) Semantic(content string, maxTokens int, opts compress.Options) model.CompressedResult {
	return compress.Diff(content, compress.DiffSemantic, maxTokens, opts)
}

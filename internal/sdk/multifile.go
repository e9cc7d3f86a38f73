package sdk

import (
	"github.com/compresr/optiflow/internal/astparse"
	"github.com/compresr/optiflow/internal/compress"
	"github.com/compresr/optiflow/internal/model"
)

// Multifile is the `multifile` bridge surface: operations that fan
// out across several files at once.
type Multifile struct {
	Files Files
}

// ReadAll reads every path in paths, skipping ones that fail
// validation or don't exist.
func (m Multifile) ReadAll(paths []string) map[string]string {
	out := make(map[string]string, len(paths))
	for _, p := range paths {
		if content, err := m.Files.Read(p); err == nil {
			out[p] = content
		}
	}
	return out
}

// Compress runs the generic compressor over every file independently.
func (m Multifile) Compress(files map[string]string, opts compress.Options) map[string]model.CompressedResult {
	out := make(map[string]model.CompressedResult, len(files))
	for path, content := range files {
		out[path] = compress.Generic(content, opts)
	}
	return out
}

// Skeletons parses and skeletonizes every file.
func (m Multifile) Skeletons(files map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(files))
	for path, content := range files {
		sk, err := astparse.ForPath(path).Skeleton(content)
		if err != nil {
			return nil, err
		}
		out[path] = sk
	}
	return out, nil
}

// ExtractShared finds import lines shared verbatim across every file,
// a cheap approximation of common dependency surface.
func (m Multifile) ExtractShared(files map[string]string) ([]string, error) {
	counts := map[string]int{}
	for path, content := range files {
		fs, err := astparse.ForPath(path).Parse(content)
		if err != nil {
			return nil, err
		}
		seen := map[string]bool{}
		for _, im := range fs.Imports {
			if !seen[im.Signature] {
				seen[im.Signature] = true
				counts[im.Signature]++
			}
		}
		_ = path
	}
	var shared []string
	for sig, c := range counts {
		if c == len(files) && len(files) > 1 {
			shared = append(shared, sig)
		}
	}
	return shared, nil
}

// Chunk splits content into roughly-equal-sized token chunks bounded
// by maxTokensPerChunk, breaking only on line boundaries.
func (m Multifile) Chunk(content string, maxTokensPerChunk int) []string {
	lines := splitLines(content)
	var chunks []string
	var cur []string
	curTokens := 0
	for _, line := range lines {
		lineTokens := len(line)/4 + 1
		if curTokens+lineTokens > maxTokensPerChunk && len(cur) > 0 {
			chunks = append(chunks, joinLines(cur))
			cur = nil
			curTokens = 0
		}
		cur = append(cur, line)
		curTokens += lineTokens
	}
	if len(cur) > 0 {
		chunks = append(chunks, joinLines(cur))
	}
	return chunks
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}

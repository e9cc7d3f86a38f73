// Package sdk implements the capability surface exposed to sandboxed
// scripts: path-validated file access, compression, code parsing,
// detection, a static git bridge, and the fluent pipeline builder.
package sdk

import (
	"path/filepath"
	"strings"

	"github.com/compresr/optiflow/internal/coreerr"
)

// PathResult is the validatePath contract.
type PathResult struct {
	Safe         bool
	ResolvedPath string
	Error        string
}

// ValidatePath reports whether p, once resolved against workingDir,
// remains inside workingDir. Absolute paths, `..` segments, and home
// (`~`) expansion are rejected outright.
func ValidatePath(p, workingDir string) PathResult {
	if strings.Contains(p, "~") {
		return PathResult{Error: "home expansion is not allowed"}
	}
	if filepath.IsAbs(p) {
		return PathResult{Error: "absolute paths are not allowed"}
	}
	for _, seg := range strings.Split(filepath.ToSlash(p), "/") {
		if seg == ".." {
			return PathResult{Error: "parent-directory segments are not allowed"}
		}
	}
	joined := filepath.Join(workingDir, p)
	resolved, err := filepath.Abs(joined)
	if err != nil {
		return PathResult{Error: err.Error()}
	}
	absWorkingDir, err := filepath.Abs(workingDir)
	if err != nil {
		return PathResult{Error: err.Error()}
	}
	rel, err := filepath.Rel(absWorkingDir, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return PathResult{Error: "path escapes working directory"}
	}
	return PathResult{Safe: true, ResolvedPath: resolved}
}

// ValidateGlobPattern rejects patterns containing absolute roots, `..`
// segments, or home expansion, matching the path validator's policy.
func ValidateGlobPattern(pattern string) error {
	if filepath.IsAbs(pattern) {
		return coreerr.New(coreerr.KindPathValidationFailed, "glob pattern must be relative")
	}
	if strings.Contains(pattern, "..") {
		return coreerr.New(coreerr.KindPathValidationFailed, "glob pattern must not contain ..")
	}
	if strings.Contains(pattern, "~") {
		return coreerr.New(coreerr.KindPathValidationFailed, "glob pattern must not use home expansion")
	}
	return nil
}

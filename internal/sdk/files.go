package sdk

import (
	"os"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/compresr/optiflow/internal/coreerr"
)

// Files is the `files` bridge surface: read, exists, glob, all
// path-validated against the working directory.
type Files struct {
	WorkingDir string
}

// Read returns a file's contents after validating its path.
func (f Files) Read(path string) (string, error) {
	res := ValidatePath(path, f.WorkingDir)
	if !res.Safe {
		return "", coreerr.New(coreerr.KindPathValidationFailed, res.Error)
	}
	b, err := os.ReadFile(res.ResolvedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", coreerr.New(coreerr.KindFileNotFound, "file not found: "+path)
		}
		return "", coreerr.Wrap(coreerr.KindFileReadError, err, "read failed: %v", err)
	}
	return string(b), nil
}

// Exists reports whether a validated path exists.
func (f Files) Exists(path string) bool {
	res := ValidatePath(path, f.WorkingDir)
	if !res.Safe {
		return false
	}
	_, err := os.Stat(res.ResolvedPath)
	return err == nil
}

// Glob expands pattern (via doublestar) rooted at the working
// directory, rejecting unsafe patterns before matching.
func (f Files) Glob(pattern string) ([]string, error) {
	if err := ValidateGlobPattern(pattern); err != nil {
		return nil, err
	}
	fsys := os.DirFS(f.WorkingDir)
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.KindPatternInvalid, err, "invalid glob pattern: %v", err)
	}
	return matches, nil
}

package astparse

import "github.com/compresr/optiflow/internal/model"

// ForPath resolves a parser from a file's extension, falling back to
// the unknown-language no-op parser.
func ForPath(path string) Parser {
	return New(LanguageFromPath(path))
}

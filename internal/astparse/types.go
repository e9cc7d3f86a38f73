// Package astparse parses source files in seven languages into the
// uniform model.FileStructure, using tree-sitter grammars and
// per-language S-expression-equivalent node tables (Go, Rust, Python,
// PHP, Swift, TypeScript, JavaScript all share one walker).
//
// One sitter.Parser per language is walked node-by-node with
// ChildByFieldName, using StartPoint().Row+1 for 1-indexed lines; a
// single engine configured by a per-language langSpec table replaces
// what would otherwise be one bespoke walker per language.
package astparse

import "github.com/compresr/optiflow/internal/model"

// ElementQuery selects one element by kind+name for Extract.
type ElementQuery struct {
	Kind model.ElementKind
	Name string
}

// ExtractedContent is the source slice corresponding to one element,
// accompanied by the file's import lines.
type ExtractedContent struct {
	Source  string
	Element model.CodeElement
	Imports []string // every import declaration in the file
}

// Parser is the public contract every language parser implements.
type Parser interface {
	Parse(content string) (model.FileStructure, error)
	Extract(content string, q ElementQuery) (*ExtractedContent, error)
	Search(content string, query string) ([]model.CodeElement, error)
	Skeleton(content string) (string, error)
}

package sdk

import (
	"github.com/compresr/optiflow/internal/astparse"
	"github.com/compresr/optiflow/internal/model"
)

// Code is the `code` bridge surface: parse/extract/skeleton against a
// single in-memory content string, dispatching to the right language
// parser by file path.
type Code struct{}

func (Code) Parse(content, path string) (model.FileStructure, error) {
	return astparse.ForPath(path).Parse(content)
}

func (Code) Extract(content, path string, kind model.ElementKind, name string) (*astparse.ExtractedContent, error) {
	return astparse.ForPath(path).Extract(content, astparse.ElementQuery{Kind: kind, Name: name})
}

func (Code) Skeleton(content, path string) (string, error) {
	return astparse.ForPath(path).Skeleton(content)
}

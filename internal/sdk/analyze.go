package sdk

import (
	"regexp"

	"github.com/compresr/optiflow/internal/astparse"
	"github.com/compresr/optiflow/internal/model"
)

// Analyze is the `analyze` bridge surface, built entirely on top of
// internal/astparse's parsed FileStructure.
type Analyze struct{}

func (Analyze) Structure(content, path string) (model.FileStructure, error) {
	return astparse.ForPath(path).Parse(content)
}

// Exports returns the file's exported declarations.
func (Analyze) Exports(content, path string) ([]model.CodeElement, error) {
	fs, err := astparse.ForPath(path).Parse(content)
	if err != nil {
		return nil, err
	}
	return fs.Exports, nil
}

// Dependencies returns the file's import declarations' signatures.
func (Analyze) Dependencies(content, path string) ([]string, error) {
	fs, err := astparse.ForPath(path).Parse(content)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(fs.Imports))
	for _, im := range fs.Imports {
		out = append(out, im.Signature)
	}
	return out, nil
}

// CallGraph returns a coarse call graph: for every function element,
// the names of other declared functions whose identifier appears in
// its signature. This is a best-effort static approximation over
// declaration text, not a type-resolved analysis.
func (Analyze) CallGraph(content, path string) (map[string][]string, error) {
	fs, err := astparse.ForPath(path).Parse(content)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(fs.Functions))
	for i, fn := range fs.Functions {
		names[i] = fn.Name
	}
	graph := make(map[string][]string, len(fs.Functions))
	for _, fn := range fs.Functions {
		var callees []string
		for _, other := range names {
			if other == fn.Name || other == "" {
				continue
			}
			if identifierRe(other).MatchString(fn.Signature) {
				callees = append(callees, other)
			}
		}
		graph[fn.Name] = callees
	}
	return graph, nil
}

func identifierRe(name string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
}

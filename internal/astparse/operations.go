package astparse

import (
	"strings"

	"github.com/compresr/optiflow/internal/coreerr"
	"github.com/compresr/optiflow/internal/model"
)

// Extract returns the source slice for one named element, alongside
// the file's import lines. Returns an ELEMENT_NOT_FOUND error when no
// element matches both the query's kind and name.
func (p *treeSitterParser) Extract(content string, q ElementQuery) (*ExtractedContent, error) {
	fs, err := p.Parse(content)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(content, "\n")

	for _, el := range fs.AllElements() {
		if el.Kind == q.Kind && el.Name == q.Name {
			src := sliceLines(lines, el.StartLine, el.EndLine)
			return &ExtractedContent{
				Source:  src,
				Element: el,
				Imports: importLines(fs, lines),
			}, nil
		}
	}
	return nil, coreerr.New(coreerr.KindElementNotFound, "element not found: "+string(q.Kind)+" "+q.Name)
}

func sliceLines(lines []string, start, end int) string {
	if start < 1 {
		start = 1
	}
	if end > len(lines) {
		end = len(lines)
	}
	if start > end {
		return ""
	}
	return strings.Join(lines[start-1:end], "\n")
}

func importLines(fs model.FileStructure, lines []string) []string {
	out := make([]string, 0, len(fs.Imports))
	for _, im := range fs.Imports {
		out = append(out, sliceLines(lines, im.StartLine, im.EndLine))
	}
	return out
}

// Search returns every element whose name contains query (substring
// match), across all eight ordered sequences.
func (p *treeSitterParser) Search(content string, query string) ([]model.CodeElement, error) {
	fs, err := p.Parse(content)
	if err != nil {
		return nil, err
	}
	var out []model.CodeElement
	for _, el := range fs.AllElements() {
		if strings.Contains(el.Name, query) {
			out = append(out, el)
		}
	}
	return out, nil
}

// Skeleton emits up to five import signatures, then every
// class/interface/type/enum/function signature with a blank line
// between them, with no bodies and no documentation.
func (p *treeSitterParser) Skeleton(content string) (string, error) {
	fs, err := p.Parse(content)
	if err != nil {
		return "", err
	}
	var b strings.Builder

	n := len(fs.Imports)
	if n > 5 {
		n = 5
	}
	for i := 0; i < n; i++ {
		b.WriteString(fs.Imports[i].Signature)
		b.WriteString("\n")
	}
	if n > 0 {
		b.WriteString("\n")
	}

	groups := [][]model.CodeElement{fs.Classes, fs.Interfaces, fs.Types, fs.Enums, fs.Functions}
	first := true
	for _, g := range groups {
		for _, el := range g {
			if !first {
				b.WriteString("\n")
			}
			first = false
			b.WriteString(el.Signature)
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n", nil
}

package astparse

import (
	"context"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/compresr/optiflow/internal/coreerr"
	"github.com/compresr/optiflow/internal/model"
)

// treeSitterParser is the shared Parser implementation for every
// language driven by tree-sitter; language-specific behavior comes
// entirely from its langSpec.
type treeSitterParser struct {
	spec *langSpec
}

// New returns the parser for lang, or a no-op parser for unknown
// languages: never throw, return an empty FileStructure with
// TotalLines still set.
func New(lang model.Language) Parser {
	spec := specFor(lang)
	if spec == nil {
		return noopParser{}
	}
	return &treeSitterParser{spec: spec}
}

type noopParser struct{}

func (noopParser) Parse(content string) (model.FileStructure, error) {
	return model.FileStructure{Language: model.LangUnknown, TotalLines: countLines(content)}, nil
}

func (noopParser) Extract(content string, q ElementQuery) (*ExtractedContent, error) {
	return nil, coreerr.New(coreerr.KindUnsupportedLanguage, "unsupported language")
}

func (noopParser) Search(content string, query string) ([]model.CodeElement, error) {
	return nil, nil
}

func (noopParser) Skeleton(content string) (string, error) {
	return "", nil
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := 1
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	if strings.HasSuffix(s, "\n") {
		n-- // a final newline ends the last line rather than starting a new one
	}
	return n
}

func (p *treeSitterParser) tree(content []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(p.spec.language())
	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.KindParseFailed, err, "parse failed: %v", err)
	}
	return tree, nil
}

// Parse parses a whole file into the uniform FileStructure.
func (p *treeSitterParser) Parse(content string) (model.FileStructure, error) {
	src := []byte(content)
	totalLines := countLines(content)
	tree, err := p.tree(src)
	if err != nil {
		return model.FileStructure{Language: p.spec.tag, TotalLines: totalLines}, err
	}
	defer tree.Close()

	fs := model.FileStructure{Language: p.spec.tag, TotalLines: totalLines}
	seen := map[string]bool{} // name+kind+start -> true, for declaration+export dedup

	var walk func(n *sitter.Node, exportPrefix string)
	walk = func(n *sitter.Node, exportPrefix string) {
		if n == nil {
			return
		}
		t := n.Type()

		if p.spec.wrapperTypes[t] {
			for i := 0; i < int(n.ChildCount()); i++ {
				walk(n.Child(i), "export ")
			}
			return
		}

		exported := exportPrefix != ""
		if p.spec.importTypes[t] {
			el := p.buildElement(n, src, model.KindImport, exportPrefix)
			fs.Imports = append(fs.Imports, el)
		} else if kind, ok := p.spec.declKinds[t]; ok {
			el := p.buildElement(n, src, kind, exportPrefix)
			key := string(kind) + ":" + el.Name + ":" + strconv.Itoa(el.StartLine)
			if !seen[key] {
				seen[key] = true
				appendByKind(&fs, kind, el)
				if exported && kind != model.KindImport {
					fs.Exports = append(fs.Exports, el)
				}
			}
		}

		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i), exportPrefix)
		}
	}
	walk(tree.RootNode(), "")
	return fs, nil
}

func appendByKind(fs *model.FileStructure, kind model.ElementKind, el model.CodeElement) {
	switch kind {
	case model.KindFunction, model.KindMethod, model.KindConstructor:
		fs.Functions = append(fs.Functions, el)
	case model.KindClass:
		fs.Classes = append(fs.Classes, el)
	case model.KindInterface:
		fs.Interfaces = append(fs.Interfaces, el)
	case model.KindType:
		fs.Types = append(fs.Types, el)
	case model.KindVariable, model.KindProperty:
		fs.Variables = append(fs.Variables, el)
	case model.KindEnum, model.KindEnumMember:
		fs.Enums = append(fs.Enums, el)
	}
}

// buildElement extracts name, line range, signature, doc, and flags
// for a single declaration node. The signature is the textual head of
// the node: everything up to its "body" field (or the whole node text
// when there is no body, e.g. a type alias or variable declaration).
func (p *treeSitterParser) buildElement(n *sitter.Node, src []byte, kind model.ElementKind, exportPrefix string) model.CodeElement {
	name := nodeName(n, src)
	startLine := int(n.StartPoint().Row) + 1
	endLine := int(n.EndPoint().Row) + 1

	sig := nodeSignature(n, src)
	if exportPrefix != "" && !strings.HasPrefix(sig, exportPrefix) {
		sig = exportPrefix + sig
	}
	doc := p.leadingComment(n, src)

	el := model.CodeElement{
		Kind:      kind,
		Name:      name,
		StartLine: startLine,
		EndLine:   endLine,
		Signature: truncateSignature(sig),
		Doc:       doc,
	}
	el.Flags.IsExported = exportPrefix != "" || looksExported(name, sig)
	el.Flags.IsAsync = strings.Contains(sig, "async ")
	el.Flags.IsStatic = strings.Contains(sig, "static ")
	el.Flags.IsAbstract = strings.Contains(sig, "abstract ")
	el.Flags.IsReadonly = strings.Contains(sig, "readonly ") || strings.Contains(sig, "const ")
	el.Visibility = visibilityOf(sig)
	return el
}

func looksExported(name, sig string) bool {
	if name == "" {
		return false
	}
	if strings.Contains(sig, "pub ") || strings.Contains(sig, "export ") || strings.Contains(sig, "public ") {
		return true
	}
	r := []rune(name)
	return r[0] >= 'A' && r[0] <= 'Z'
}

func visibilityOf(sig string) model.Visibility {
	switch {
	case strings.Contains(sig, "private "):
		return model.VisibilityPrivate
	case strings.Contains(sig, "protected "):
		return model.VisibilityProtected
	case strings.Contains(sig, "public "):
		return model.VisibilityPublic
	default:
		return ""
	}
}

func nodeName(n *sitter.Node, src []byte) string {
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		return string(src[nameNode.StartByte():nameNode.EndByte()])
	}
	// Fallback: first identifier-ish child.
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if strings.Contains(c.Type(), "identifier") {
			return string(src[c.StartByte():c.EndByte()])
		}
	}
	return ""
}

func nodeSignature(n *sitter.Node, src []byte) string {
	body := n.ChildByFieldName("body")
	if body == nil {
		return strings.TrimSpace(string(src[n.StartByte():n.EndByte()]))
	}
	head := src[n.StartByte():body.StartByte()]
	return strings.TrimRight(strings.TrimSpace(string(head)), "{:")
}

// truncateSignature bounds a signature's length per the skeleton
// algorithm: long type expressions truncate at 200 characters.
func truncateSignature(s string) string {
	s = collapseWhitespace(s)
	if len(s) <= 200 {
		return s
	}
	return s[:200] + "..."
}

func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

func (p *treeSitterParser) leadingComment(n *sitter.Node, src []byte) string {
	prev := n.PrevSibling()
	if prev == nil || prev.Type() != p.spec.commentType {
		return ""
	}
	gap := int(n.StartPoint().Row) - int(prev.EndPoint().Row)
	if gap > 1 {
		return ""
	}
	return strings.TrimSpace(string(src[prev.StartByte():prev.EndByte()]))
}


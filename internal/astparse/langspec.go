package astparse

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/swift"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/compresr/optiflow/internal/model"
)

// langSpec configures the shared tree-sitter walker for one language.
// Each language contributes a node-type -> ElementKind table and a
// small set of node-type names ("wrapper" nodes like TypeScript's
// export_statement, import nodes, the comment node) the walker needs
// to know about;
// everything else (signature slicing, doc-comment attachment, line
// numbering) is shared.
type langSpec struct {
	tag      model.Language
	language func() *sitter.Language

	declKinds map[string]model.ElementKind
	// wrapperTypes are nodes (e.g. export_statement) that wrap exactly
	// one declaration child and should mark it exported.
	wrapperTypes map[string]bool
	importTypes  map[string]bool
	commentType  string
}

var specs = map[model.Language]*langSpec{
	model.LangGo: {
		tag:      model.LangGo,
		language: golang.GetLanguage,
		declKinds: map[string]model.ElementKind{
			"function_declaration": model.KindFunction,
			"method_declaration":   model.KindMethod,
			"type_declaration":     model.KindType,
			"const_declaration":    model.KindVariable,
			"var_declaration":      model.KindVariable,
		},
		importTypes: map[string]bool{"import_declaration": true},
		commentType: "comment",
	},
	model.LangPython: {
		tag:      model.LangPython,
		language: python.GetLanguage,
		declKinds: map[string]model.ElementKind{
			"function_definition": model.KindFunction,
			"class_definition":    model.KindClass,
			"decorated_definition": model.KindFunction,
		},
		importTypes: map[string]bool{"import_statement": true, "import_from_statement": true},
		commentType: "comment",
	},
	model.LangRust: {
		tag:      model.LangRust,
		language: rust.GetLanguage,
		declKinds: map[string]model.ElementKind{
			"function_item":     model.KindFunction,
			"struct_item":       model.KindClass,
			"enum_item":         model.KindEnum,
			"trait_item":        model.KindInterface,
			"impl_item":         model.KindClass,
			"type_item":         model.KindType,
			"const_item":        model.KindVariable,
			"static_item":       model.KindVariable,
		},
		importTypes: map[string]bool{"use_declaration": true},
		commentType: "line_comment",
	},
	model.LangPHP: {
		tag:      model.LangPHP,
		language: php.GetLanguage,
		declKinds: map[string]model.ElementKind{
			"function_definition":        model.KindFunction,
			"method_declaration":         model.KindMethod,
			"class_declaration":          model.KindClass,
			"interface_declaration":      model.KindInterface,
			"enum_declaration":           model.KindEnum,
			"property_declaration":       model.KindProperty,
			"const_declaration":          model.KindVariable,
		},
		importTypes: map[string]bool{"namespace_use_declaration": true},
		commentType: "comment",
	},
	model.LangSwift: {
		tag:      model.LangSwift,
		language: swift.GetLanguage,
		declKinds: map[string]model.ElementKind{
			"function_declaration":  model.KindFunction,
			"class_declaration":     model.KindClass,
			"protocol_declaration":  model.KindInterface,
			"property_declaration":  model.KindProperty,
			"enum_declaration":      model.KindEnum,
			"typealias_declaration": model.KindType,
		},
		importTypes: map[string]bool{"import_declaration": true},
		commentType: "comment",
	},
	model.LangTypeScript: {
		tag:      model.LangTypeScript,
		language: typescript.GetLanguage,
		declKinds: map[string]model.ElementKind{
			"function_declaration":  model.KindFunction,
			"class_declaration":     model.KindClass,
			"interface_declaration": model.KindInterface,
			"type_alias_declaration": model.KindType,
			"enum_declaration":      model.KindEnum,
			"method_definition":     model.KindMethod,
			"lexical_declaration":   model.KindVariable,
			"variable_declaration":  model.KindVariable,
		},
		wrapperTypes: map[string]bool{"export_statement": true},
		importTypes:  map[string]bool{"import_statement": true},
		commentType:  "comment",
	},
	model.LangJavaScript: {
		tag:      model.LangJavaScript,
		language: javascript.GetLanguage,
		declKinds: map[string]model.ElementKind{
			"function_declaration": model.KindFunction,
			"class_declaration":    model.KindClass,
			"method_definition":    model.KindMethod,
			"lexical_declaration":  model.KindVariable,
			"variable_declaration": model.KindVariable,
		},
		wrapperTypes: map[string]bool{"export_statement": true},
		importTypes:  map[string]bool{"import_statement": true},
		commentType:  "comment",
	},
}

func specFor(lang model.Language) *langSpec {
	return specs[lang]
}

// LanguageFromPath resolves a model.Language from a file extension.
func LanguageFromPath(path string) model.Language {
	ext := strings.ToLower(path[strings.LastIndex(path, ".")+1:])
	switch ext {
	case "ts", "tsx", "mts", "cts":
		return model.LangTypeScript
	case "js", "jsx", "mjs", "cjs":
		return model.LangJavaScript
	case "py", "pyi":
		return model.LangPython
	case "go":
		return model.LangGo
	case "rs":
		return model.LangRust
	case "php":
		return model.LangPHP
	case "swift":
		return model.LangSwift
	default:
		return model.LangUnknown
	}
}

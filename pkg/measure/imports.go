package measure

import (
	"github.com/panbanda/strata/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// countImports counts import statements in a parse tree. Each imported
// package counts once: Go's grouped import blocks contribute one count per
// spec, and Ruby's require calls are filtered out of ordinary method calls.
func countImports(result *parser.ParseResult) int {
	types := makeSet(importNodeTypes(result.Language))
	if len(types) == 0 {
		return 0
	}

	count := 0
	ruby := result.Language == parser.LangRuby

	parser.WalkTyped(result.Tree.RootNode(), result.Source, func(n *sitter.Node, nodeType string, src []byte) bool {
		if !types[nodeType] {
			return true
		}
		if ruby {
			if isRequireCall(n, src) {
				count++
			}
			return true
		}
		count++
		return true
	})

	return count
}

// isRequireCall reports whether a Ruby call node is require, require_relative,
// or load.
func isRequireCall(node *sitter.Node, source []byte) bool {
	method := node.ChildByFieldName("method")
	if method == nil {
		return false
	}
	switch parser.GetNodeText(method, source) {
	case "require", "require_relative", "load":
		return true
	}
	return false
}

// importNodeTypes returns the AST node types for import statements in each
// language.
func importNodeTypes(lang parser.Language) []string {
	switch lang {
	case parser.LangGo:
		// Counting specs rather than declarations keeps grouped blocks from
		// double-counting.
		return []string{"import_spec"}
	case parser.LangRust:
		return []string{"use_declaration"}
	case parser.LangPython:
		return []string{"import_statement", "import_from_statement"}
	case parser.LangTypeScript, parser.LangJavaScript, parser.LangTSX:
		return []string{"import_statement"}
	case parser.LangJava:
		return []string{"import_declaration"}
	case parser.LangC, parser.LangCPP:
		return []string{"preproc_include"}
	case parser.LangCSharp:
		return []string{"using_directive"}
	case parser.LangRuby:
		return []string{"call"} // filtered to require/require_relative/load
	case parser.LangPHP:
		return []string{"use_declaration", "namespace_use_declaration"}
	default:
		return nil
	}
}

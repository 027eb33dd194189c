package measure

import (
	"github.com/panbanda/strata/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// functionComplexity computes cyclomatic complexity for one function:
// 1 + the decision points in its body. Bodyless declarations count 1.
func functionComplexity(fn parser.FunctionNode, result *parser.ParseResult) uint32 {
	if fn.Body == nil {
		return 1
	}
	return 1 + countDecisionPoints(fn.Body, result.Source, result.Language)
}

// countDecisionPoints counts branching constructs under node. Short-circuit
// logical operators count as additional decision points alongside the
// statement-level branches.
func countDecisionPoints(node *sitter.Node, source []byte, lang parser.Language) uint32 {
	var count uint32

	decisionTypes := makeSet(decisionNodeTypes(lang))

	parser.WalkTyped(node, source, func(n *sitter.Node, nodeType string, src []byte) bool {
		if decisionTypes[nodeType] {
			count++
		}
		switch nodeType {
		case "binary_expression", "logical_expression", "boolean_operator":
			switch binaryOperator(n, src) {
			case "&&", "||", "and", "or":
				count++
			}
		}
		return true
	})

	return count
}

// binaryOperator returns the operator token of a binary-style node, or "".
func binaryOperator(node *sitter.Node, source []byte) string {
	for i := range int(node.ChildCount()) {
		child := node.Child(i)
		switch child.Type() {
		case "&&", "||", "and", "or":
			return child.Type()
		}
		// Some grammars expose the token through an operator field
		if child.IsNamed() && child.Type() == "operator" {
			return parser.GetNodeText(child, source)
		}
	}
	return ""
}

// decisionNodeTypes returns AST node types that represent decision points.
func decisionNodeTypes(lang parser.Language) []string {
	// Common decision types across most languages
	common := []string{
		"if_statement",
		"if_expression",
		"while_statement",
		"while_expression",
		"for_statement",
		"for_expression",
		"case_statement",
		"catch_clause",
		"ternary_expression",
		"conditional_expression",
	}

	switch lang {
	case parser.LangGo:
		return append(common, "select_statement", "type_switch_statement", "expression_switch_statement")
	case parser.LangRust:
		return append(common, "match_expression", "loop_expression", "if_let_expression")
	case parser.LangPython:
		return append(common,
			"elif_clause", "except_clause", "with_statement",
			"list_comprehension", "set_comprehension", "dictionary_comprehension", "generator_expression")
	case parser.LangTypeScript, parser.LangJavaScript, parser.LangTSX:
		return append(common, "switch_statement", "do_statement")
	case parser.LangJava, parser.LangCSharp:
		return append(common, "switch_statement", "switch_expression", "do_statement", "enhanced_for_statement")
	case parser.LangC, parser.LangCPP:
		return append(common, "switch_statement", "do_statement")
	case parser.LangRuby:
		// Ruby uses different node names than most languages
		return []string{"if", "elsif", "unless", "while", "until", "for", "case", "when", "rescue", "conditional"}
	case parser.LangPHP:
		return append(common, "switch_statement", "elseif_clause")
	default:
		return common
	}
}

// makeSet converts a slice to a map for O(1) lookups.
func makeSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

package measure

import (
	"math"

	"github.com/panbanda/strata/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// halsteadVolume computes the Halstead program volume for a parse tree:
// V = N * log2(n), where N is total operator and operand occurrences and n
// is the distinct vocabulary. Volume feeds the maintainability index.
func halsteadVolume(root *sitter.Node, source []byte, lang parser.Language) float64 {
	counter := &halsteadCounter{
		operators: make(map[string]int),
		operands:  make(map[string]int),
		keywords:  operatorKeywords(lang),
	}
	counter.walk(root, source)

	uniqueOperators := len(counter.operators)
	uniqueOperands := len(counter.operands)
	if uniqueOperators == 0 || uniqueOperands == 0 {
		return 0
	}

	length := 0
	for _, n := range counter.operators {
		length += n
	}
	for _, n := range counter.operands {
		length += n
	}

	vocabulary := uniqueOperators + uniqueOperands
	return float64(length) * math.Log2(float64(vocabulary))
}

// halsteadCounter accumulates operator and operand occurrences for one file.
type halsteadCounter struct {
	operators map[string]int
	operands  map[string]int
	keywords  map[string]bool
}

func (h *halsteadCounter) walk(node *sitter.Node, source []byte) {
	if node == nil {
		return
	}

	nodeType := node.Type()
	text := parser.GetNodeText(node, source)

	if h.isOperator(nodeType, text) {
		h.operators[text]++
	} else if h.isOperand(nodeType, text) {
		h.operands[text]++
	}

	for i := range int(node.ChildCount()) {
		h.walk(node.Child(i), source)
	}
}

func (h *halsteadCounter) isOperator(nodeType, text string) bool {
	if operatorNodeTypes[nodeType] {
		return true
	}
	if operatorSymbols[text] {
		return true
	}
	return h.keywords[text]
}

func (h *halsteadCounter) isOperand(nodeType, text string) bool {
	if operandNodeTypes[nodeType] {
		return true
	}
	if h.isOperator(nodeType, text) {
		return false
	}
	if len(text) == 0 {
		return false
	}
	return !nonOperandNodeTypes[nodeType]
}

// operatorNodeTypes are node types counted as operators across languages.
var operatorNodeTypes = map[string]bool{
	// Binary and unary expressions
	"binary_expression":      true,
	"binary_operator":        true,
	"comparison_operator":    true,
	"assignment_expression":  true,
	"assignment_operator":    true,
	"augmented_assignment":   true,
	"compound_assignment":    true,
	"unary_expression":       true,
	"unary_operator":         true,
	"update_expression":      true,
	"logical_expression":     true,
	"boolean_operator":       true,
	"conditional_expression": true,
	"ternary_expression":     true,

	// Control flow (counted as operators)
	"if_statement":     true,
	"if_expression":    true,
	"if":               true, // Ruby
	"for_statement":    true,
	"for_expression":   true,
	"for":              true,
	"while_statement":  true,
	"while_expression": true,
	"while":            true,
	"switch_statement": true,
	"match_expression": true,
	"case":             true,
	"try_statement":    true,
	"catch_clause":     true,
	"except_clause":    true,
	"return_statement": true,
	"break_statement":  true,
	"continue":         true,

	// Function calls (the call itself is an operator)
	"call_expression": true,
	"call":            true,
	"method_call":     true,

	// Member access
	"member_expression":    true,
	"field_expression":     true,
	"selector_expression":  true,
	"subscript_expression": true,
	"index_expression":     true,
}

// operatorSymbols are token texts counted as operators.
var operatorSymbols = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"=": true, "==": true, "!=": true, "<": true, ">": true,
	"<=": true, ">=": true, "&&": true, "||": true, "!": true,
	"&": true, "|": true, "^": true, "~": true,
	"<<": true, ">>": true, ">>>": true,
	"+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"&=": true, "|=": true, "^=": true, "<<=": true, ">>=": true,
	"++": true, "--": true,
	"?": true, ":": true, // Ternary
	"=>": true, "->": true, // Arrow
	".": true, "::": true, // Member access
	"[": true, "]": true, // Subscript
	"(": true, ")": true, // Call/grouping
}

// operandNodeTypes are node types counted as operands.
var operandNodeTypes = map[string]bool{
	// Identifiers
	"identifier":       true,
	"type_identifier":  true,
	"field_identifier": true,

	// Literals
	"number":                     true,
	"integer":                    true,
	"integer_literal":            true,
	"float":                      true,
	"float_literal":              true,
	"string":                     true,
	"string_literal":             true,
	"interpreted_string_literal": true,
	"raw_string_literal":         true,
	"character":                  true,
	"char_literal":               true,
	"boolean":                    true,
	"true":                       true,
	"false":                      true,
	"nil":                        true,
	"null":                       true,
	"none":                       true, // Python
	"undefined":                  true, // JavaScript
	"template_string":            true,
	"regex":                      true,
	"regular_expression":         true,
	"array_literal":              true,
	"object_literal":             true,
	"tuple":                      true,
	"list":                       true,
	"dictionary":                 true,
	"hash":                       true,
}

// nonOperandNodeTypes are structural node types excluded from operand counts.
var nonOperandNodeTypes = map[string]bool{
	"source_file":              true,
	"program":                  true,
	"module":                   true,
	"package_clause":           true,
	"import_declaration":       true,
	"import_statement":         true,
	"import_from_statement":    true,
	"function_declaration":     true,
	"function_definition":      true,
	"method_declaration":       true,
	"class_declaration":        true,
	"class_definition":         true,
	"block":                    true,
	"statement_block":          true,
	"expression_statement":     true,
	"comment":                  true,
	"line_comment":             true,
	"block_comment":            true,
	"parameter_list":           true,
	"parameters":               true,
	"argument_list":            true,
	"arguments":                true,
	"type_annotation":          true,
	"type_declaration":         true,
	"variable_declaration":     true,
	"short_var_declaration":    true,
	"const_declaration":        true,
	"let_declaration":          true,
	"var_declaration":          true,
	"lexical_declaration":      true,
	"formal_parameters":        true,
	"parenthesized_expression": true,
}

// operatorKeywords returns language-specific keywords counted as operators.
func operatorKeywords(lang parser.Language) map[string]bool {
	common := map[string]bool{
		"if": true, "else": true, "for": true, "while": true,
		"switch": true, "case": true, "default": true,
		"break": true, "continue": true, "return": true,
		"try": true, "catch": true, "finally": true, "throw": true,
		"new": true, "delete": true, "typeof": true, "instanceof": true,
		"in": true, "of": true,
	}

	switch lang {
	case parser.LangGo:
		common["go"] = true
		common["defer"] = true
		common["select"] = true
		common["range"] = true
		common["func"] = true
		common["chan"] = true
	case parser.LangRust:
		common["match"] = true
		common["loop"] = true
		common["impl"] = true
		common["async"] = true
		common["await"] = true
		common["move"] = true
		common["mut"] = true
	case parser.LangPython:
		common["elif"] = true
		common["except"] = true
		common["with"] = true
		common["as"] = true
		common["yield"] = true
		common["lambda"] = true
		common["and"] = true
		common["or"] = true
		common["not"] = true
		common["is"] = true
		common["pass"] = true
		common["raise"] = true
		common["assert"] = true
	case parser.LangTypeScript, parser.LangJavaScript, parser.LangTSX:
		common["async"] = true
		common["await"] = true
		common["yield"] = true
		common["function"] = true
		common["class"] = true
		common["extends"] = true
		common["super"] = true
		common["this"] = true
		common["void"] = true
	case parser.LangJava, parser.LangCSharp:
		common["extends"] = true
		common["implements"] = true
		common["super"] = true
		common["this"] = true
		common["synchronized"] = true
		common["throws"] = true
	case parser.LangRuby:
		common["do"] = true
		common["end"] = true
		common["unless"] = true
		common["until"] = true
		common["begin"] = true
		common["rescue"] = true
		common["ensure"] = true
		common["yield"] = true
	}

	return common
}

// Package complexity extracts function-like units from parsed Rust source
// and computes their cyclomatic complexity.
package complexity

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/SeverinAlexB/craprs/pkg/parser"
)

// implPlaceholder labels impl blocks whose self type is not a plain path
// (references, trait objects, tuples).
const implPlaceholder = "<impl>"

// Extract enumerates every function-like unit in a parsed file in document
// order. Free functions keep their bare name, impl methods are qualified as
// Type::method, trait default methods keep their bare name. Functions marked
// #[test] and everything inside #[cfg(test)] modules are skipped.
func Extract(result *parser.ParseResult) []Function {
	e := &extractor{source: result.Source}
	e.visitChildren(result.Tree.RootNode(), "")
	return e.functions
}

type extractor struct {
	source    []byte
	functions []Function
}

// visitChildren dispatches the named children of a declaration container
// (source_file, mod body, impl body, trait body).
func (e *extractor) visitChildren(node *sitter.Node, enclosingType string) {
	for i := range int(node.NamedChildCount()) {
		e.visitItem(node.NamedChild(i), enclosingType)
	}
}

// visitItem handles one declaration. The enclosing impl type travels down as
// a parameter rebound per call, so sibling impl blocks cannot leak their
// type name into each other.
func (e *extractor) visitItem(node *sitter.Node, enclosingType string) {
	switch node.Type() {
	case "mod_item":
		if parser.HasCfgTestAttr(node, e.source) {
			return
		}
		if body := node.ChildByFieldName("body"); body != nil {
			e.visitChildren(body, "")
		}
	case "impl_item":
		name := implTypeName(node.ChildByFieldName("type"), e.source)
		if body := node.ChildByFieldName("body"); body != nil {
			e.visitChildren(body, name)
		}
	case "trait_item":
		// Only methods with a provided default body parse as function_item
		// here; bare signatures are function_signature_item and fall through
		// the dispatch untouched.
		if body := node.ChildByFieldName("body"); body != nil {
			e.visitChildren(body, "")
		}
	case "function_item":
		e.visitFunction(node, enclosingType)
	}
}

// visitFunction records one unit and then re-enters its body looking for
// nested function declarations, which become independent units.
func (e *extractor) visitFunction(node *sitter.Node, enclosingType string) {
	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}

	if !parser.HasTestAttr(node, e.source) {
		nameNode := node.ChildByFieldName("name")
		name := parser.GetNodeText(nameNode, e.source)
		if enclosingType != "" {
			name = enclosingType + "::" + name
		}

		startLine := node.StartPoint().Row + 1
		if nameNode != nil {
			startLine = nameNode.StartPoint().Row + 1
		}

		e.functions = append(e.functions, Function{
			Name:       name,
			StartLine:  startLine,
			EndLine:    body.EndPoint().Row + 1,
			Complexity: Count(body, e.source),
		})
	}

	e.findNested(body)
}

// findNested walks a function body for further declarations. This traversal
// never counts anything; it only hands nested items back to the item
// dispatch. It is the mirror image of Count, which walks the same body but
// refuses to descend into function_item nodes.
func (e *extractor) findNested(body *sitter.Node) {
	for i := range int(body.NamedChildCount()) {
		child := body.NamedChild(i)
		switch child.Type() {
		case "function_item", "impl_item", "trait_item", "mod_item":
			e.visitItem(child, "")
		default:
			e.findNested(child)
		}
	}
}

// implTypeName renders an impl block's self type as a display name.
func implTypeName(ty *sitter.Node, source []byte) string {
	if ty == nil {
		return implPlaceholder
	}
	switch ty.Type() {
	case "type_identifier":
		return parser.GetNodeText(ty, source)
	case "scoped_type_identifier":
		// Already ::-joined in the source.
		return parser.GetNodeText(ty, source)
	case "generic_type":
		// Foo<T> displays as Foo.
		return implTypeName(ty.ChildByFieldName("type"), source)
	default:
		return implPlaceholder
	}
}

// decisionKinds are the node types that each contribute one decision point.
// Both the pre- and post-0.20 grammar spellings of the let-pattern forms are
// listed so the counter is stable across grammar vintages. match arms count
// one each; the match_expression itself contributes nothing.
var decisionKinds = map[string]bool{
	"if_expression":        true,
	"if_let_expression":    true,
	"while_expression":     true,
	"while_let_expression": true,
	"for_expression":       true,
	"loop_expression":      true,
	"match_arm":            true,
	"try_expression":       true,
}

// Count computes cyclomatic complexity for one function body: 1 for the
// baseline path plus 1 per decision point. Closure bodies accumulate into
// the same running total; nested function declarations contribute nothing
// (they are extracted as independent units).
func Count(body *sitter.Node, source []byte) uint32 {
	count := uint32(1)

	parser.WalkTyped(body, source, func(n *sitter.Node, nodeType string, src []byte) bool {
		switch {
		case nodeType == "function_item":
			return false
		case decisionKinds[nodeType]:
			count++
		case nodeType == "binary_expression":
			if op := operatorOf(n); op == "&&" || op == "||" {
				count++
			}
		}
		return true
	})

	return count
}

// operatorOf finds the operator token of a binary expression.
func operatorOf(node *sitter.Node) string {
	if op := node.ChildByFieldName("operator"); op != nil {
		return op.Type()
	}
	for i := range int(node.ChildCount()) {
		if t := node.Child(i).Type(); t == "&&" || t == "||" {
			return t
		}
	}
	return ""
}

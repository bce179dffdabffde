package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Outer attributes in the Rust grammar are siblings preceding the item they
// decorate, not children of it. AttributesOf collects the text of every
// attribute_item directly above node, skipping interleaved comments.
func AttributesOf(node *sitter.Node, source []byte) []string {
	var attrs []string
	for sib := node.PrevNamedSibling(); sib != nil; sib = sib.PrevNamedSibling() {
		switch sib.Type() {
		case "attribute_item":
			attrs = append(attrs, GetNodeText(sib, source))
		case "line_comment", "block_comment":
			continue
		default:
			return attrs
		}
	}
	return attrs
}

// HasTestAttr reports whether node carries a bare #[test] attribute, the
// marker for a single isolated unit test.
func HasTestAttr(node *sitter.Node, source []byte) bool {
	for _, attr := range AttributesOf(node, source) {
		if attrPath(attr) == "test" {
			return true
		}
	}
	return false
}

// HasCfgTestAttr reports whether node carries #[cfg(test)] (or cfg with
// test among its top-level arguments).
func HasCfgTestAttr(node *sitter.Node, source []byte) bool {
	for _, attr := range AttributesOf(node, source) {
		if attrPath(attr) != "cfg" {
			continue
		}
		for _, arg := range attrArgs(attr) {
			if arg == "test" {
				return true
			}
		}
	}
	return false
}

// attrPath extracts the attribute path from its source text:
// "#[cfg(test)]" -> "cfg", "#[test]" -> "test".
func attrPath(attr string) string {
	inner := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(attr), "#["), "]")
	inner = strings.TrimSpace(inner)
	if i := strings.IndexAny(inner, "( ="); i >= 0 {
		inner = inner[:i]
	}
	return inner
}

// attrArgs extracts the top-level comma-separated arguments of an attribute:
// "#[cfg(test, feature = \"x\")]" -> ["test", `feature = "x"`].
// Nested groups like all(test) stay a single argument; only a top-level
// test token marks a cfg(test) item.
func attrArgs(attr string) []string {
	open := strings.Index(attr, "(")
	end := strings.LastIndex(attr, ")")
	if open < 0 || end <= open {
		return nil
	}

	var args []string
	depth := 0
	start := open + 1
	for i := open + 1; i < end; i++ {
		switch attr[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(attr[start:i]))
				start = i + 1
			}
		}
	}
	if last := strings.TrimSpace(attr[start:end]); last != "" {
		args = append(args, last)
	}
	return args
}

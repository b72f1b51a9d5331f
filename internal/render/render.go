// ABOUTME: Logic-less template engine over the document model
// ABOUTME: Supports dotted-path interpolation, truthy/repeated sections, and inverted sections

package render

import (
	"strings"

	"github.com/harper/feedvault/internal/docmodel"
)

// The grammar is deliberately small: {{a.b}} interpolates, {{#a.b}}...{{/a.b}}
// renders its body when the value is truthy (once per element for lists),
// {{^a.b}}...{{/a.b}} renders when the value is falsy, and {{! ...}} is a
// comment. Variable lookup follows docmodel.Doc.Lookup, so missing or
// falsy-intermediate paths interpolate as the empty string and can never
// fail a render.

type node interface{}

type textNode string

type varNode struct {
	path string
}

type sectionNode struct {
	path     string
	inverted bool
	children []node
}

// Render expands a template against the given root document. Unresolved
// variables render as empty strings; malformed tags are left as literal
// text. Render never fails.
func Render(template string, root docmodel.Doc) string {
	nodes, _ := parse(template, "")
	var b strings.Builder
	renderNodes(&b, nodes, []docmodel.Value{docmodel.Nested(root)})
	return b.String()
}

// parse consumes template text until an {{/until}} close tag (or the end
// of input, when until is empty) and returns the nodes read so far plus
// the unconsumed remainder.
func parse(tpl, until string) ([]node, string) {
	var nodes []node
	for {
		open := strings.Index(tpl, "{{")
		if open < 0 {
			if tpl != "" {
				nodes = append(nodes, textNode(tpl))
			}
			return nodes, ""
		}
		close := strings.Index(tpl[open:], "}}")
		if close < 0 {
			nodes = append(nodes, textNode(tpl))
			return nodes, ""
		}
		close += open

		if open > 0 {
			nodes = append(nodes, textNode(tpl[:open]))
		}
		tag := strings.TrimSpace(tpl[open+2 : close])
		rest := tpl[close+2:]

		switch {
		case tag == "":
			nodes = append(nodes, textNode(tpl[open:close+2]))
			tpl = rest
		case tag[0] == '!':
			tpl = rest
		case tag[0] == '#' || tag[0] == '^':
			path := strings.TrimSpace(tag[1:])
			children, remainder := parse(rest, path)
			nodes = append(nodes, sectionNode{path: path, inverted: tag[0] == '^', children: children})
			tpl = remainder
		case tag[0] == '/':
			path := strings.TrimSpace(tag[1:])
			if path == until {
				return nodes, rest
			}
			// Stray close tag: keep it as literal text.
			nodes = append(nodes, textNode(tpl[open:close+2]))
			tpl = rest
		default:
			nodes = append(nodes, varNode{path: tag})
			tpl = rest
		}
	}
}

func renderNodes(b *strings.Builder, nodes []node, stack []docmodel.Value) {
	for _, n := range nodes {
		switch n := n.(type) {
		case textNode:
			b.WriteString(string(n))
		case varNode:
			b.WriteString(resolve(n.path, stack).Text())
		case sectionNode:
			renderSection(b, n, stack)
		}
	}
}

func renderSection(b *strings.Builder, s sectionNode, stack []docmodel.Value) {
	v := resolve(s.path, stack)

	if s.inverted {
		if !v.IsTruthy() {
			renderNodes(b, s.children, stack)
		}
		return
	}

	if !v.IsTruthy() {
		return
	}

	if list, ok := v.AsList(); ok {
		for _, el := range list {
			renderNodes(b, s.children, append(stack, el))
		}
		return
	}
	renderNodes(b, s.children, append(stack, v))
}

// resolve looks a path up through the context stack, innermost frame
// first. "." names the current frame itself, which is how list sections
// reference their element.
func resolve(path string, stack []docmodel.Value) docmodel.Value {
	if path == "." {
		return stack[len(stack)-1]
	}
	for i := len(stack) - 1; i >= 0; i-- {
		doc, ok := stack[i].AsDoc()
		if !ok {
			continue
		}
		if v := doc.Lookup(path); !v.IsAbsent() {
			return v
		}
	}
	return docmodel.Absent
}

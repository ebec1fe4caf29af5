package lower

import (
	"strings"
	"unicode"

	"github.com/svelte-go/compiler/internal/ast"
)

func isRemovable(text string) bool {
	return strings.TrimSpace(text) == ""
}

// trimStartOneWhitespace collapses a leading whitespace run to one space.
func trimStartOneWhitespace(text string) string {
	trimmed := strings.TrimLeftFunc(text, unicode.IsSpace)
	if trimmed == text {
		return text
	}
	return " " + trimmed
}

// trimEndOneWhitespace collapses a trailing whitespace run to one space.
func trimEndOneWhitespace(text string) string {
	trimmed := strings.TrimRightFunc(text, unicode.IsSpace)
	if trimmed == text {
		return text
	}
	return trimmed + " "
}

// trimTextNodes applies the fixed trim semantics to one child sequence:
// whitespace-only texts fall off both edges, the surviving edge texts lose
// their outer whitespace entirely, and internal text not adjacent to an
// interpolation collapses its edge whitespace to a single space.
func trimTextNodes(nodes []*ast.Node) []*ast.Node {
	if len(nodes) == 0 {
		return nodes
	}

	start, end := 0, len(nodes)

	for _, n := range nodes {
		if n.Type != ast.TextNode {
			break
		}
		if isRemovable(n.Data) {
			start++
			continue
		}
		n.Data = strings.TrimLeftFunc(n.Data, unicode.IsSpace)
		break
	}

	for i := len(nodes) - 1; i >= start; i-- {
		n := nodes[i]
		if n.Type != ast.TextNode {
			break
		}
		if isRemovable(n.Data) {
			end--
			continue
		}
		n.Data = strings.TrimRightFunc(n.Data, unicode.IsSpace)
		break
	}

	if start >= end {
		return nil
	}

	out := make([]*ast.Node, 0, end-start)
	for idx := start; idx < end; idx++ {
		current := nodes[idx]

		if current.Type == ast.TextNode {
			var prev, next *ast.Node
			if idx > start {
				prev = nodes[idx-1]
			}
			if idx+1 < end {
				next = nodes[idx+1]
			}

			if prev == nil || prev.Type != ast.InterpolationNode {
				current.Data = trimStartOneWhitespace(current.Data)
			}
			if next == nil || next.Type != ast.InterpolationNode {
				current.Data = trimEndOneWhitespace(current.Data)
			}
		}

		out = append(out, current)
	}

	return out
}

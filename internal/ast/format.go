package ast

import (
	"strings"
)

// FormatNode re-prints a node to source form. Embedded expressions print
// from their raw source slices, so output is stable regardless of the
// expression printer; interpolation bodies and concatenation parts keep
// their surrounding whitespace.
func FormatNode(n *Node) string {
	var b strings.Builder
	formatNode(&b, n)
	return b.String()
}

func FormatFragment(nodes []*Node) string {
	var b strings.Builder
	for _, n := range nodes {
		formatNode(&b, n)
	}
	return b.String()
}

func formatNode(b *strings.Builder, n *Node) {
	switch n.Type {
	case TextNode:
		b.WriteString(n.Data)
	case CommentNode:
		b.WriteString("<!--")
		b.WriteString(n.Data)
		b.WriteString("-->")
	case InterpolationNode:
		b.WriteString("{")
		b.WriteString(n.RawExpression)
		b.WriteString("}")
	case ElementNode:
		b.WriteString("<")
		b.WriteString(n.Name)
		for _, attr := range n.Attributes {
			b.WriteString(" ")
			formatAttribute(b, attr)
		}
		if n.SelfClosing {
			b.WriteString("/>")
			return
		}
		b.WriteString(">")
		b.WriteString(FormatFragment(n.Children))
		b.WriteString("</")
		b.WriteString(n.Name)
		b.WriteString(">")
	case IfBlockNode:
		b.WriteString("{#if ")
		b.WriteString(strings.TrimSpace(n.RawExpression))
		b.WriteString("}")
		formatIfBody(b, n)
		b.WriteString("{/if}")
	case EachBlockNode:
		b.WriteString("{#each ")
		b.WriteString(strings.TrimSpace(n.RawExpression))
		b.WriteString(" as ")
		b.WriteString(strings.TrimSpace(n.RawItem))
		if n.RawIndex != "" {
			b.WriteString(", ")
			b.WriteString(strings.TrimSpace(n.RawIndex))
		}
		if n.RawKey != "" {
			b.WriteString(" (")
			b.WriteString(strings.TrimSpace(n.RawKey))
			b.WriteString(")")
		}
		b.WriteString("}")
		b.WriteString(FormatFragment(n.Children))
		b.WriteString("{/each}")
	case ScriptNode:
		b.WriteString("<script>")
		b.WriteString(n.Data)
		b.WriteString("</script>")
	}
}

// formatIfBody prints the consequent and reconstructs {:else if} chains
// when the alternate's only child is a nested if-block.
func formatIfBody(b *strings.Builder, n *Node) {
	b.WriteString(FormatFragment(n.Children))

	if !n.HasAlternate {
		return
	}

	if len(n.Alternate) == 1 && n.Alternate[0].Type == IfBlockNode && n.Alternate[0].IsElseIf {
		nested := n.Alternate[0]
		b.WriteString("{:else if ")
		b.WriteString(strings.TrimSpace(nested.RawExpression))
		b.WriteString("}")
		formatIfBody(b, nested)
		return
	}

	b.WriteString("{:else}")
	b.WriteString(FormatFragment(n.Alternate))
}

func formatAttribute(b *strings.Builder, a *Attribute) {
	switch a.Kind {
	case StringAttribute:
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(a.Value)
		b.WriteString(`"`)
	case BooleanAttribute:
		b.WriteString(a.Name)
	case ExpressionAttribute:
		if a.Shorthand {
			b.WriteString("{")
			b.WriteString(a.Name)
			b.WriteString("}")
			return
		}
		b.WriteString(a.Name)
		b.WriteString("={")
		b.WriteString(strings.TrimSpace(a.RawExpression))
		b.WriteString("}")
	case ConcatenationAttribute:
		b.WriteString(a.Name)
		b.WriteString(`="`)
		for _, part := range a.Parts {
			if part.IsExpression() {
				b.WriteString("{")
				b.WriteString(part.Raw)
				b.WriteString("}")
			} else {
				b.WriteString(part.Text)
			}
		}
		b.WriteString(`"`)
	case SpreadAttribute:
		b.WriteString("{...")
		b.WriteString(strings.TrimSpace(a.RawExpression))
		b.WriteString("}")
	case ClassDirective:
		b.WriteString("class:")
		b.WriteString(a.Name)
		if !a.Shorthand {
			b.WriteString("={")
			b.WriteString(strings.TrimSpace(a.RawExpression))
			b.WriteString("}")
		}
	case BindDirective:
		b.WriteString("bind:")
		b.WriteString(a.Name)
		if !a.Shorthand {
			b.WriteString("={")
			b.WriteString(strings.TrimSpace(a.RawExpression))
			b.WriteString("}")
		}
	}
}

package analyze

import (
	"strings"

	"github.com/svelte-go/compiler/internal/hir"
)

// dynamicPass marks nodes that require runtime work. Children carry higher
// ids than their parents, so one reverse sweep settles elements bottom-up.
func (a *Analyses) dynamicPass() {
	for i := len(a.store.Nodes) - 1; i >= 0; i-- {
		node := a.store.Nodes[i]
		switch node.Kind {
		case hir.InterpolationNode, hir.ConcatenationNode, hir.IfBlockNode, hir.EachBlockNode:
			a.dynamic[node.ID] = true
		case hir.ElementNode:
			dynamic := a.elementNeedsRuntime(node.Element)
			if !dynamic {
				for _, child := range node.Element.Nodes {
					if a.dynamic[child] {
						dynamic = true
						break
					}
				}
			}
			if dynamic {
				a.dynamic[node.ID] = true
			}
		}
	}
}

// elementNeedsRuntime applies the static-element rules: every attribute
// must be settable as a plain string, the element must not be custom, and
// none of the HTML-specific exceptions may apply.
func (a *Analyses) elementNeedsRuntime(el *hir.Element) bool {
	if el.IsCustomElement() {
		return true
	}

	for _, attrID := range el.Attributes {
		attr := a.store.GetAttribute(attrID)

		if attr.Kind != hir.StringAttribute && attr.Kind != hir.BooleanAttribute {
			return true
		}

		name := attr.Name
		if name == "dir" {
			return true
		}
		if strings.HasPrefix(name, "on") {
			return true
		}
		if (el.Name == "input" || el.Name == "textarea") && (name == "value" || name == "checked") {
			return true
		}
		if el.Name == "option" && name == "value" {
			return true
		}
		if el.Name == "img" && (name == "src" || name == "loading") {
			return true
		}
	}

	return false
}

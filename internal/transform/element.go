package transform

import (
	"github.com/svelte-go/compiler/internal/hir"
)

// transformElement compiles a dynamic element: static attributes land in
// the template, dynamic ones become runtime calls against the element's
// anchor variable, and children walk a child-access context.
func (t *transformer) transformElement(node *hir.Node, ctx *ownerContext) {
	el := node.Element

	ctx.pushTemplate("<" + el.Name)
	t.transformAttributes(el, ctx)
	ctx.pushTemplate(">")

	child := newOwnerContext(ctx.fragment, ctx.anchor(), accessChild, el.OwnerID)
	t.transformNodes(el.Nodes, child)

	if !el.SelfClosing {
		ctx.pushTemplate("</" + el.Name + ">")
	}
}

// printStaticElement renders a fully static subtree into the template
// string alone; nothing in it needs runtime assignment.
func (t *transformer) printStaticElement(el *hir.Element, f *fragmentContext) {
	f.template = append(f.template, "<"+el.Name)
	for _, attrID := range el.Attributes {
		attr := t.store.GetAttribute(attrID)
		f.template = append(f.template, staticAttributeText(attr))
	}
	f.template = append(f.template, ">")

	for _, childID := range el.Nodes {
		child := t.store.GetNode(childID)
		switch child.Kind {
		case hir.TextNode:
			f.template = append(f.template, child.Value)
		case hir.ElementNode:
			t.printStaticElement(child.Element, f)
		}
	}

	if !el.SelfClosing {
		f.template = append(f.template, "</"+el.Name+">")
	}
}

func staticAttributeText(attr *hir.Attribute) string {
	if attr.Kind == hir.BooleanAttribute {
		return " " + attr.Name
	}
	return " " + attr.Name + `="` + attr.Value + `"`
}

package transform

import (
	"strconv"

	"github.com/svelte-go/compiler/internal/hir"
)

// transformNodes walks one child list: static elements and texts only
// advance the sibling offset, dynamic nodes flush an anchor variable, and
// a trailing run of static nodes repositions the hydration cursor.
func (t *transformer) transformNodes(nodes []hir.NodeID, ctx *ownerContext) {
	for _, id := range nodes {
		node := t.store.GetNode(id)

		switch {
		case node.Kind == hir.ElementNode && !t.analyses.IsDynamic(id):
			ctx.nextSibling()
			t.printStaticElement(node.Element, ctx.fragment)
			continue
		case node.Kind == hir.TextNode:
			ctx.nextSibling()
		case node.IsInterpolationLike():
			ctx.flushNode(true, "text")
		case node.Kind == hir.ElementNode:
			ctx.flushNode(false, node.Element.Name)
		case node.IsElseIfBlock():
			// The nested $.if receives $$anchor directly.
		default:
			ctx.flushNode(false, "node")
		}

		t.transformNode(node, ctx)
	}

	// If static nodes trail the last dynamic child, traverse to the last
	// (n - 1) one when hydrating.
	if ctx.siblingOffset > 1 {
		offset := ctx.siblingOffset - 1
		if offset == 1 {
			ctx.pushInit("$.next();")
		} else {
			ctx.pushInit("$.next(" + strconv.Itoa(offset) + ");")
		}
	}
}

func (t *transformer) transformNode(node *hir.Node, ctx *ownerContext) {
	switch node.Kind {
	case hir.TextNode:
		ctx.pushTemplate(node.Value)
	case hir.InterpolationNode:
		t.transformInterpolation(node, ctx)
	case hir.ConcatenationNode:
		t.transformConcatenation(node, ctx)
	case hir.ElementNode:
		t.transformElement(node, ctx)
	case hir.IfBlockNode:
		t.transformIfBlock(node, ctx)
	case hir.EachBlockNode:
		t.transformEachBlock(node, ctx)
	default:
		panic("transform: unexpected node kind " + node.Kind.String())
	}
}

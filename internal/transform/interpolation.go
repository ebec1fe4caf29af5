package transform

import (
	"github.com/svelte-go/compiler/internal/hir"
	"github.com/svelte-go/compiler/internal/js"
)

// transformInterpolation emits the write for one {expr}: a reactive
// expression schedules $.set_text in update, a static one assigns
// nodeValue at init. One space lands in the static template so a text
// node exists.
func (t *transformer) transformInterpolation(node *hir.Node, ctx *ownerContext) {
	ctx.pushTemplate(" ")

	reactive := t.analyses.IsReactive(node.Expression)
	expr := js.Print(t.transformExpression(node.Expression, ctx.owner))

	t.writeText(ctx, reactive, expr)
}

// transformConcatenation does the same for a compressed text/interpolation
// run, synthesizing a template literal whose expression parts are padded
// with ?? "".
func (t *transformer) transformConcatenation(node *hir.Node, ctx *ownerContext) {
	ctx.pushTemplate(" ")

	reactive := false
	parts := make([]js.TemplatePart, 0, len(node.Parts))
	for _, part := range node.Parts {
		if !part.IsExpression {
			parts = append(parts, js.TextPart(part.Text))
			continue
		}
		if t.analyses.IsReactive(part.Expression) {
			reactive = true
		}
		parts = append(parts, js.ExprPart(t.transformExpression(part.Expression, ctx.owner)))
	}

	expr := js.Print(js.TemplateLiteral(parts))
	t.writeText(ctx, reactive, expr)
}

func (t *transformer) writeText(ctx *ownerContext, reactive bool, expr string) {
	anchor := ctx.anchor()
	if reactive {
		ctx.pushUpdate("$.set_text(" + anchor + ", " + expr + ");")
	} else {
		ctx.pushInit(anchor + ".nodeValue = " + expr + ";")
	}
}

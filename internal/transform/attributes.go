package transform

import (
	"github.com/svelte-go/compiler/internal/hir"
	"github.com/svelte-go/compiler/internal/js"
)

// transformAttributes lowers a dynamic element's attributes: plain strings
// and booleans stay in the static template, everything else becomes a
// runtime call placed by its reactivity.
func (t *transformer) transformAttributes(el *hir.Element, ctx *ownerContext) {
	for _, attrID := range el.Attributes {
		attr := t.store.GetAttribute(attrID)

		switch attr.Kind {
		case hir.StringAttribute, hir.BooleanAttribute:
			ctx.pushTemplate(staticAttributeText(attr))
		case hir.ExpressionAttribute:
			expr := js.Print(t.transformExpression(attr.Expression, ctx.owner))
			t.writeAttribute(ctx, t.analyses.IsReactive(attr.Expression), attr.Name, expr)
		case hir.ConcatenationAttribute:
			reactive := false
			parts := make([]js.TemplatePart, 0, len(attr.Parts))
			for _, part := range attr.Parts {
				if !part.IsExpression {
					parts = append(parts, js.TextPart(part.Text))
					continue
				}
				if t.analyses.IsReactive(part.Expression) {
					reactive = true
				}
				parts = append(parts, js.ExprPart(t.transformExpression(part.Expression, ctx.owner)))
			}
			t.writeAttribute(ctx, reactive, attr.Name, js.Print(js.TemplateLiteral(parts)))
		case hir.SpreadAttribute:
			t.transformSpread(attr, ctx)
		case hir.ClassDirective:
			expr := js.Print(t.transformExpression(attr.Expression, ctx.owner))
			call := "$.toggle_class(" + ctx.anchor() + ", " + quoteString(attr.Name) + ", " + expr + ");"
			if t.analyses.IsReactive(attr.Expression) {
				ctx.pushUpdate(call)
			} else {
				ctx.pushInit(call)
			}
		case hir.BindDirective:
			t.transformBindDirective(attr, ctx)
		}
	}
}

func (t *transformer) writeAttribute(ctx *ownerContext, reactive bool, name, expr string) {
	call := "$.set_attribute(" + ctx.anchor() + ", " + quoteString(name) + ", " + expr + ");"
	if reactive {
		ctx.pushUpdate(call)
	} else {
		ctx.pushInit(call)
	}
}

// transformSpread allocates the per-element previous-attribute slot and
// schedules the merge in update.
func (t *transformer) transformSpread(attr *hir.Attribute, ctx *ownerContext) {
	anchor := ctx.anchor()
	slot := anchor + "_attrs"

	expr := js.Print(t.transformExpression(attr.Expression, ctx.owner))

	ctx.pushBeforeInit("let " + slot + ";")
	ctx.pushUpdate(slot + " = $.set_attributes(" + anchor + ", " + slot + ", " + expr + ");")
}

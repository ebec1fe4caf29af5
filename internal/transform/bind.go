package transform

import (
	"github.com/svelte-go/compiler/internal/ast"
	"github.com/svelte-go/compiler/internal/hir"
	"github.com/svelte-go/compiler/internal/js"
)

// transformBindDirective emits the two-way binding for bind:value,
// bind:checked and bind:group. Getter and setter are arrow functions whose
// bodies go through the same rune rewriting as every script expression.
func (t *transformer) transformBindDirective(attr *hir.Attribute, ctx *ownerContext) {
	anchor := ctx.anchor()
	expr := t.store.TakeExpression(attr.Expression)

	var getterBody, setterBody string
	if v, ok := js.AsIdentifier(expr); ok {
		name := js.VarName(v)
		getterBody = js.Print(t.rewriteTemplateExpr(js.Ident(name), ctx.owner))
		setterBody = js.Print(t.rewriteTemplateExpr(js.Assign(js.Ident(name), js.Ident("$$value")), ctx.owner))
	} else {
		// Member targets stay assignable as printed.
		target := js.Print(t.rewriteTemplateExpr(expr, ctx.owner))
		getterBody = target
		setterBody = target + " = $$value"
	}

	getter := "() => " + getterBody
	setter := "($$value) => " + setterBody

	var stmt string
	switch attr.BindKind {
	case ast.BindValue:
		stmt = "$.bind_value(" + anchor + ", " + getter + ", " + setter + ");"
	case ast.BindChecked:
		stmt = "$.bind_checked(" + anchor + ", " + getter + ", " + setter + ");"
	case ast.BindGroup:
		stmt = "$.binding_group(" + anchor + ", " + getter + ", " + setter + ");"
	default:
		// Unknown bind targets have no runtime counterpart.
		return
	}

	ctx.pushAfterUpdate(stmt)
}

package analyze

import (
	"github.com/svelte-go/compiler/internal/ast"
	"github.com/svelte-go/compiler/internal/hir"
	"github.com/svelte-go/compiler/internal/js"
)

type accessKind uint32

const (
	accessRead accessKind = iota
	accessWrite
	accessReadWrite
)

// templatePass walks every template expression, recording references,
// rune mutation, and the per-expression flags.
func (a *Analyses) templatePass() {
	for _, node := range a.store.Nodes {
		switch node.Kind {
		case hir.InterpolationNode:
			a.analyzeExpression(node.Expression, node.Owner, accessRead)
		case hir.ConcatenationNode:
			for _, part := range node.Parts {
				if part.IsExpression {
					a.analyzeExpression(part.Expression, node.Owner, accessRead)
				}
			}
		case hir.ElementNode:
			a.analyzeElement(node)
		case hir.IfBlockNode:
			a.analyzeExpression(node.If.Test, node.Owner, accessRead)
		case hir.EachBlockNode:
			// A collection rendered through $.each is runtime-mutable, so
			// its references count as read-write.
			a.analyzeExpression(node.Each.Collection, node.Each.OwnerID, accessReadWrite)
		}
	}
}

func (a *Analyses) analyzeElement(node *hir.Node) {
	for _, attrID := range node.Element.Attributes {
		attr := a.store.GetAttribute(attrID)
		switch attr.Kind {
		case hir.ExpressionAttribute, hir.SpreadAttribute, hir.ClassDirective:
			a.analyzeExpression(attr.Expression, node.Owner, accessRead)
		case hir.BindDirective:
			a.analyzeExpression(attr.Expression, node.Owner, accessReadWrite)
			if attr.BindKind == ast.BindGroup {
				a.needsBindingGroup = true
			}
		case hir.ConcatenationAttribute:
			for _, part := range attr.Parts {
				if part.IsExpression {
					a.analyzeExpression(part.Expression, node.Owner, accessRead)
				}
			}
		}
	}
}

func (a *Analyses) analyzeExpression(id hir.ExpressionID, owner hir.OwnerID, base accessKind) {
	if id == hir.NoExpression {
		return
	}

	expr := a.store.PeekExpression(id)
	flags := ExpressionFlags(0)
	var runeRefs []SymbolID

	record := func(v *js.Var, access accessKind) {
		if !js.IsUndeclared(v) {
			return
		}
		sym, ok := a.resolveName(owner, js.VarName(v))
		if !ok {
			return
		}
		rune, isRune := a.runes[sym]
		if !isRune {
			return
		}
		flags |= FlagRuneReference
		runeRefs = append(runeRefs, sym)
		if access != accessRead {
			rune.Mutated = true
		}
	}

	rw := &js.Rewriter{
		Var: func(v *js.Var) js.Expr {
			record(v, base)
			return nil
		},
		Assign: func(b *js.BinaryExpr) js.Expr {
			if v, ok := b.X.(*js.Var); ok {
				record(v, accessWrite)
			}
			return nil
		},
		Update: func(u *js.UnaryExpr) js.Expr {
			if v, ok := u.X.(*js.Var); ok {
				record(v, accessReadWrite)
			}
			return nil
		},
		Call: func(c *js.CallExpr) {
			flags |= FlagFunctionCall
		},
	}
	rw.Expr(expr)

	a.exprFlags[id] = flags
	a.exprRunes[id] = runeRefs
}

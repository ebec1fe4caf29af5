package transform

import (
	"github.com/svelte-go/compiler/internal/analyze"
	"github.com/svelte-go/compiler/internal/hir"
	"github.com/svelte-go/compiler/internal/js"
)

// transformScript rewrites the embedded script in place: rune declarations
// unwrap or become $.state calls, rune reads/writes/updates go through the
// runtime, and imports hoist out of the body.
func (t *transformer) transformScript() []string {
	rw := t.runeRewriter(func(v *js.Var) *analyze.Rune {
		r, ok := t.analyses.RuneForVar(v)
		if !ok {
			return nil
		}
		return r
	})

	var body []string
	for _, stmt := range t.store.Program.List {
		if imp, ok := stmt.(*js.ImportStmt); ok {
			t.imports = append(t.imports, js.PrintStmt(imp))
			continue
		}

		t.rewriteRuneDeclarations(stmt)
		rw.Stmt(stmt)
		body = append(body, js.PrintStmt(stmt))
	}
	return body
}

// rewriteRuneDeclarations replaces rune initializer calls per the single
// declaration rule: mutated runes keep a $.state call, unmutated runes
// unwrap to the plain initializer; a missing argument becomes void 0, and
// a proxy-worthy argument is wrapped in $.proxy.
func (t *transformer) rewriteRuneDeclarations(stmt js.Stmt) {
	decl, ok := stmt.(*js.VarDecl)
	if !ok {
		return
	}

	for i := range decl.List {
		binding := &decl.List[i]
		v, ok := js.BindingVar(binding.Binding)
		if !ok {
			continue
		}
		rune, ok := t.analyses.RuneForVar(v)
		if !ok {
			continue
		}
		call, ok := binding.Default.(*js.CallExpr)
		if !ok {
			continue
		}

		args := js.CallArgs(call)
		var init js.Expr
		if len(args) == 0 {
			init = js.Undefined()
		} else {
			init = args[0]
			if js.IsProxyWorthy(init) {
				init = js.Call("$.proxy", init)
			}
		}

		if rune.Mutated {
			binding.Default = js.Call("$.state", init)
		} else {
			binding.Default = init
		}
	}
}

// runeRewriter builds the rewriter shared by the script emitter and the
// template emitter's single-expression mode; resolve decides what counts
// as a rune reference in the current scope.
func (t *transformer) runeRewriter(resolve func(v *js.Var) *analyze.Rune) *js.Rewriter {
	readOf := func(name string, rune *analyze.Rune) js.Expr {
		if rune.Mutated {
			return js.Call("$.get", js.Ident(name))
		}
		return js.Ident(name)
	}

	return &js.Rewriter{
		Var: func(v *js.Var) js.Expr {
			rune := resolve(v)
			if rune == nil || !rune.Mutated {
				return nil
			}
			return js.Call("$.get", js.Ident(js.VarName(v)))
		},
		Assign: func(b *js.BinaryExpr) js.Expr {
			v, ok := b.X.(*js.Var)
			if !ok {
				return nil
			}
			rune := resolve(v)
			if rune == nil {
				return nil
			}
			name := js.VarName(v)

			right := b.Y
			if base, compound := js.CompoundAssignBase(b.Op); compound {
				right = &js.BinaryExpr{Op: base, X: readOf(name, rune), Y: right}
			}

			args := []js.Expr{js.Ident(name), right}
			if assignNeedsProxy(b.Op, right) {
				args = append(args, js.Bool(true))
			}
			return js.Call("$.set", args...)
		},
		Update: func(u *js.UnaryExpr) js.Expr {
			v, ok := u.X.(*js.Var)
			if !ok {
				return nil
			}
			if rune := resolve(v); rune == nil {
				return nil
			}

			callee := "$.update"
			if js.IsPrefixUpdateOp(u.Op) {
				callee = "$.update_pre"
			}
			args := []js.Expr{js.Ident(js.VarName(v))}
			if js.IsDecrementOp(u.Op) {
				args = append(args, js.Number("-1"))
			}
			return js.Call(callee, args...)
		},
	}
}

// assignNeedsProxy is the one site deciding the third $.set argument: the
// operator must be non-coercive and the (possibly expanded) right-hand
// side proxy-worthy.
func assignNeedsProxy(op js.TokenType, right js.Expr) bool {
	return js.IsNonCoerciveAssignOp(op) && js.IsProxyWorthy(right)
}

// transformExpression moves an interned expression out of the store and
// rewrites it in the given owner's scope.
func (t *transformer) transformExpression(id hir.ExpressionID, owner hir.OwnerID) js.Expr {
	return t.rewriteTemplateExpr(t.store.TakeExpression(id), owner)
}

func (t *transformer) rewriteTemplateExpr(expr js.Expr, owner hir.OwnerID) js.Expr {
	rw := t.runeRewriter(func(v *js.Var) *analyze.Rune {
		if !js.IsUndeclared(v) {
			return nil
		}
		rune, ok := t.analyses.ResolveRune(owner, js.VarName(v))
		if !ok {
			return nil
		}
		return rune
	})
	return rw.Expr(expr)
}

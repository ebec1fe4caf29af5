package js

import "github.com/tdewolff/parse/v2/js"

// The library ships a read-only visitor, so node replacement is done with an
// explicit dispatch over its expression types. Callbacks return a replacement
// node or nil to keep the original; children of a replacement are not
// revisited.
type Rewriter struct {
	// Var is called for identifier references outside assignment-target and
	// update-target position.
	Var func(v *js.Var) js.IExpr
	// Assign is called for assignment expressions after the right-hand side
	// has been rewritten.
	Assign func(b *js.BinaryExpr) js.IExpr
	// Update is called for ++ and -- expressions.
	Update func(u *js.UnaryExpr) js.IExpr
	// Call observes every call expression before its children rewrite.
	Call func(c *js.CallExpr)
}

func IsAssignOp(tt js.TokenType) bool {
	switch tt {
	case js.EqToken, js.AddEqToken, js.SubEqToken, js.MulEqToken, js.DivEqToken,
		js.ModEqToken, js.ExpEqToken, js.LtLtEqToken, js.GtGtEqToken,
		js.GtGtGtEqToken, js.BitAndEqToken, js.BitOrEqToken, js.BitXorEqToken,
		js.AndEqToken, js.OrEqToken, js.NullishEqToken:
		return true
	}
	return false
}

// IsNonCoerciveAssignOp matches the operators that hand the right-hand side
// through unchanged: plain assignment and the logical assignments.
func IsNonCoerciveAssignOp(tt js.TokenType) bool {
	switch tt {
	case js.EqToken, js.AndEqToken, js.OrEqToken, js.NullishEqToken:
		return true
	}
	return false
}

// CompoundAssignBase maps a compound assignment operator to its base
// binary operator.
func CompoundAssignBase(tt js.TokenType) (js.TokenType, bool) {
	switch tt {
	case js.AddEqToken:
		return js.AddToken, true
	case js.SubEqToken:
		return js.SubToken, true
	case js.MulEqToken:
		return js.MulToken, true
	case js.DivEqToken:
		return js.DivToken, true
	case js.ModEqToken:
		return js.ModToken, true
	case js.ExpEqToken:
		return js.ExpToken, true
	case js.LtLtEqToken:
		return js.LtLtToken, true
	case js.GtGtEqToken:
		return js.GtGtToken, true
	case js.GtGtGtEqToken:
		return js.GtGtGtToken, true
	case js.BitAndEqToken:
		return js.BitAndToken, true
	case js.BitOrEqToken:
		return js.BitOrToken, true
	case js.BitXorEqToken:
		return js.BitXorToken, true
	case js.AndEqToken:
		return js.AndToken, true
	case js.OrEqToken:
		return js.OrToken, true
	case js.NullishEqToken:
		return js.NullishToken, true
	}
	return 0, false
}

// Assign builds a plain assignment expression.
func Assign(target, value js.IExpr) *js.BinaryExpr {
	return &js.BinaryExpr{Op: js.EqToken, X: target, Y: value}
}

func isUpdateOp(tt js.TokenType) bool {
	switch tt {
	case js.IncrToken, js.DecrToken, js.PreIncrToken, js.PostIncrToken,
		js.PreDecrToken, js.PostDecrToken:
		return true
	}
	return false
}

func IsDecrementOp(tt js.TokenType) bool {
	switch tt {
	case js.DecrToken, js.PreDecrToken, js.PostDecrToken:
		return true
	}
	return false
}

func IsPrefixUpdateOp(tt js.TokenType) bool {
	switch tt {
	case js.IncrToken, js.DecrToken, js.PreIncrToken, js.PreDecrToken:
		return true
	}
	return false
}

// Expr rewrites an expression tree bottom-up and returns the (possibly
// replaced) node.
func (r *Rewriter) Expr(e js.IExpr) js.IExpr {
	switch n := e.(type) {
	case *js.Var:
		if r.Var != nil {
			if out := r.Var(n); out != nil {
				return out
			}
		}
		return n
	case *js.LiteralExpr:
		return n
	case *js.GroupExpr:
		n.X = r.Expr(n.X)
		return n
	case *js.BinaryExpr:
		if IsAssignOp(n.Op) {
			// The target identifier is not a read; only member targets and
			// the right-hand side recurse.
			if _, bare := n.X.(*js.Var); !bare {
				n.X = r.Expr(n.X)
			}
			n.Y = r.Expr(n.Y)
			if r.Assign != nil {
				if out := r.Assign(n); out != nil {
					return out
				}
			}
			return n
		}
		n.X = r.Expr(n.X)
		n.Y = r.Expr(n.Y)
		return n
	case *js.UnaryExpr:
		if isUpdateOp(n.Op) {
			if r.Update != nil {
				if out := r.Update(n); out != nil {
					return out
				}
			}
			if _, bare := n.X.(*js.Var); !bare {
				n.X = r.Expr(n.X)
			}
			return n
		}
		n.X = r.Expr(n.X)
		return n
	case *js.CondExpr:
		n.Cond = r.Expr(n.Cond)
		n.X = r.Expr(n.X)
		n.Y = r.Expr(n.Y)
		return n
	case *js.CallExpr:
		if r.Call != nil {
			r.Call(n)
		}
		n.X = r.Expr(n.X)
		for i := range n.Args.List {
			n.Args.List[i].Value = r.Expr(n.Args.List[i].Value)
		}
		return n
	case *js.DotExpr:
		n.X = r.Expr(n.X)
		return n
	case *js.IndexExpr:
		n.X = r.Expr(n.X)
		n.Y = r.Expr(n.Y)
		return n
	case *js.TemplateExpr:
		for i := range n.List {
			n.List[i].Expr = r.Expr(n.List[i].Expr)
		}
		return n
	case *js.ArrayExpr:
		for i := range n.List {
			if n.List[i].Value != nil {
				n.List[i].Value = r.Expr(n.List[i].Value)
			}
		}
		return n
	case *js.ObjectExpr:
		for i := range n.List {
			if n.List[i].Value != nil {
				n.List[i].Value = r.Expr(n.List[i].Value)
			}
			if n.List[i].Init != nil {
				n.List[i].Init = r.Expr(n.List[i].Init)
			}
		}
		return n
	case *js.ArrowFunc:
		r.stmts(n.Body.List)
		return n
	case *js.FuncDecl:
		r.stmts(n.Body.List)
		return n
	}
	return e
}

// Stmt rewrites expressions inside a statement in place. Statement kinds
// outside the dispatch set are left untouched.
func (r *Rewriter) Stmt(s js.IStmt) {
	switch n := s.(type) {
	case *js.ExprStmt:
		n.Value = r.Expr(n.Value)
	case *js.VarDecl:
		for i := range n.List {
			if n.List[i].Default != nil {
				n.List[i].Default = r.Expr(n.List[i].Default)
			}
		}
	case *js.ReturnStmt:
		if n.Value != nil {
			n.Value = r.Expr(n.Value)
		}
	case *js.IfStmt:
		n.Cond = r.Expr(n.Cond)
		if n.Body != nil {
			r.Stmt(n.Body)
		}
		if n.Else != nil {
			r.Stmt(n.Else)
		}
	case *js.BlockStmt:
		r.stmts(n.List)
	case *js.FuncDecl:
		r.stmts(n.Body.List)
	}
}

func (r *Rewriter) stmts(list []js.IStmt) {
	for _, s := range list {
		r.Stmt(s)
	}
}

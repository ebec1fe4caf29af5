package analyze

import (
	"github.com/svelte-go/compiler/internal/js"
)

// scriptPass walks the script for writes: an assignment or update whose
// target resolves to a rune binding marks the rune mutated.
func (a *Analyses) scriptPass() {
	rw := &js.Rewriter{
		Assign: func(b *js.BinaryExpr) js.Expr {
			if v, ok := b.X.(*js.Var); ok {
				a.markVarMutated(v)
			}
			return nil
		},
		Update: func(u *js.UnaryExpr) js.Expr {
			if v, ok := u.X.(*js.Var); ok {
				a.markVarMutated(v)
			}
			return nil
		},
	}

	for _, stmt := range a.store.Program.List {
		rw.Stmt(stmt)
	}
}

func (a *Analyses) markVarMutated(v *js.Var) {
	if sym, ok := a.runeByVar[js.RootVar(v)]; ok {
		a.runes[sym].Mutated = true
	}
}

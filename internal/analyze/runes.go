package analyze

import (
	"github.com/svelte-go/compiler/internal/js"
)

type RuneKind uint32

const (
	RuneState RuneKind = iota
	RuneStateRaw
	RuneStateSnapshot
	RuneProps
	RunePropsID
	RuneBindable
	RuneDerived
	RuneDerivedBy
	RuneEffect
	RuneEffectPre
	RuneEffectTracking
	RuneEffectRoot
	RuneInspect
	RuneInspectWith
	RuneInspectTrace
	RuneHost
)

// RuneKindFromName matches the reserved rune callee names.
func RuneKindFromName(name string) (RuneKind, bool) {
	switch name {
	case "$state":
		return RuneState, true
	case "$state.raw":
		return RuneStateRaw, true
	case "$state.snapshot":
		return RuneStateSnapshot, true
	case "$props":
		return RuneProps, true
	case "$props.id":
		return RunePropsID, true
	case "$bindable":
		return RuneBindable, true
	case "$derived":
		return RuneDerived, true
	case "$derived.by":
		return RuneDerivedBy, true
	case "$effect":
		return RuneEffect, true
	case "$effect.pre":
		return RuneEffectPre, true
	case "$effect.tracking":
		return RuneEffectTracking, true
	case "$effect.root":
		return RuneEffectRoot, true
	case "$inspect":
		return RuneInspect, true
	case "$inspect().with":
		return RuneInspectWith, true
	case "$inspect.trace":
		return RuneInspectTrace, true
	case "$host":
		return RuneHost, true
	}
	return 0, false
}

// A Rune is a reactive binding declared by calling a reserved rune name.
// Mutated flips when any reference carries a write or read-write flag.
type Rune struct {
	Kind    RuneKind
	Symbol  SymbolID
	Mutated bool
}

// discoverRunes registers a rune for every top-level declaration whose
// initializer calls a reserved rune name.
func (a *Analyses) discoverRunes() {
	for _, stmt := range a.store.Program.List {
		decl, ok := stmt.(*js.VarDecl)
		if !ok {
			continue
		}
		for i := range decl.List {
			binding := decl.List[i]
			v, ok := js.BindingVar(binding.Binding)
			if !ok || binding.Default == nil {
				continue
			}
			call, ok := binding.Default.(*js.CallExpr)
			if !ok {
				continue
			}
			kind, ok := RuneKindFromName(js.CalleeName(call.X))
			if !ok {
				continue
			}

			root := js.RootVar(v)
			sym, found := a.symbolForVar(root)
			if !found {
				continue
			}
			rune := &Rune{Kind: kind, Symbol: sym}
			a.runes[sym] = rune
			a.runeByVar[root] = sym
		}
	}
}

func (a *Analyses) symbolForVar(root *js.Var) (SymbolID, bool) {
	for _, sym := range a.symbols {
		if sym.Var == root {
			return sym.ID, true
		}
	}
	return 0, false
}

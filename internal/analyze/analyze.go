// Package analyze derives the tables the emitters consume: symbol and scope
// tables over the embedded script and the template, the rune registry,
// per-expression flags, per-owner content types, and the node dynamism map.
package analyze

import (
	"github.com/svelte-go/compiler/internal/hir"
	"github.com/svelte-go/compiler/internal/js"
)

type (
	SymbolID int
	ScopeID  int
)

const NoScope ScopeID = -1

type Symbol struct {
	ID    SymbolID
	Name  string
	Scope ScopeID

	// Binding identity inside the script program; nil for template-scope
	// symbols (each-block bindings).
	Var *js.Var
}

type Scope struct {
	ID       ScopeID
	Parent   ScopeID
	bindings map[string]SymbolID
}

type ExpressionFlags uint32

const (
	FlagRuneReference ExpressionFlags = 1 << iota
	FlagFunctionCall
)

func (f ExpressionFlags) Has(other ExpressionFlags) bool {
	return f&other != 0
}

// Analyses is the read-only product of all passes, keyed by HIR ids.
type Analyses struct {
	store *hir.Store

	scopes  []*Scope
	symbols []*Symbol

	runes     map[SymbolID]*Rune
	runeByVar map[*js.Var]SymbolID

	exprFlags map[hir.ExpressionID]ExpressionFlags
	exprRunes map[hir.ExpressionID][]SymbolID

	content    map[hir.OwnerID]*OwnerContent
	ownerScope map[hir.OwnerID]ScopeID
	dynamic    map[hir.NodeID]bool

	needsBindingGroup bool

	// Namespace for module-scope hoisted names (template statics).
	HoistedGen *IdentifierGen
}

const (
	scriptScope       ScopeID = 0
	templateRootScope ScopeID = 1
)

// Analyze runs every pass in dependency order over the lowered store.
func Analyze(store *hir.Store) *Analyses {
	a := &Analyses{
		store:      store,
		runes:      make(map[SymbolID]*Rune),
		runeByVar:  make(map[*js.Var]SymbolID),
		exprFlags:  make(map[hir.ExpressionID]ExpressionFlags),
		exprRunes:  make(map[hir.ExpressionID][]SymbolID),
		content:    make(map[hir.OwnerID]*OwnerContent),
		ownerScope: make(map[hir.OwnerID]ScopeID),
		dynamic:    make(map[hir.NodeID]bool),
		HoistedGen: NewIdentifierGen(),
	}

	a.addScope(NoScope)            // script module scope
	a.addScope(scriptScope)        // template root pseudo scope
	a.ownerScope[hir.TemplateOwnerID] = templateRootScope

	a.collectScriptSymbols()
	a.discoverRunes()
	a.addBlockScopes()
	a.scriptPass()
	a.templatePass()
	a.contentTypePass()
	a.dynamicPass()

	return a
}

func (a *Analyses) addScope(parent ScopeID) ScopeID {
	id := ScopeID(len(a.scopes))
	a.scopes = append(a.scopes, &Scope{
		ID:       id,
		Parent:   parent,
		bindings: make(map[string]SymbolID),
	})
	return id
}

func (a *Analyses) addSymbol(name string, scope ScopeID, v *js.Var) SymbolID {
	id := SymbolID(len(a.symbols))
	a.symbols = append(a.symbols, &Symbol{ID: id, Name: name, Scope: scope, Var: v})
	a.scopes[scope].bindings[name] = id
	return id
}

// scopeFor resolves the scope an owner's expressions evaluate in, walking
// up the owner chain to the nearest scope-introducing owner.
func (a *Analyses) scopeFor(owner hir.OwnerID) ScopeID {
	for {
		if scope, ok := a.ownerScope[owner]; ok {
			return scope
		}
		node := a.store.GetNode(a.store.GetOwner(owner).NodeID)
		owner = node.Owner
	}
}

// resolveName looks a template identifier up through the owner's scope
// chain down to the script module scope.
func (a *Analyses) resolveName(owner hir.OwnerID, name string) (SymbolID, bool) {
	scope := a.scopeFor(owner)
	for scope != NoScope {
		if sym, ok := a.scopes[scope].bindings[name]; ok {
			return sym, true
		}
		scope = a.scopes[scope].Parent
	}
	return 0, false
}

// RuneOf returns the rune registered for a symbol, if any.
func (a *Analyses) RuneOf(sym SymbolID) (*Rune, bool) {
	r, ok := a.runes[sym]
	return r, ok
}

// RuneForVar maps a script binding identity to its rune.
func (a *Analyses) RuneForVar(v *js.Var) (*Rune, bool) {
	sym, ok := a.runeByVar[js.RootVar(v)]
	if !ok {
		return nil, false
	}
	return a.runes[sym], true
}

// ResolveRune resolves a template identifier to a rune through the owner's
// scope chain.
func (a *Analyses) ResolveRune(owner hir.OwnerID, name string) (*Rune, bool) {
	sym, ok := a.resolveName(owner, name)
	if !ok {
		return nil, false
	}
	r, ok := a.runes[sym]
	return r, ok
}

func (a *Analyses) ExpressionFlags(id hir.ExpressionID) ExpressionFlags {
	return a.exprFlags[id]
}

// IsReactive is the single classification site: an expression's output call
// belongs in update iff the expression contains a call or references a
// mutated rune.
func (a *Analyses) IsReactive(id hir.ExpressionID) bool {
	if a.exprFlags[id].Has(FlagFunctionCall) {
		return true
	}
	for _, sym := range a.exprRunes[id] {
		if r, ok := a.runes[sym]; ok && r.Mutated {
			return true
		}
	}
	return false
}

func (a *Analyses) IsDynamic(id hir.NodeID) bool {
	return a.dynamic[id]
}

func (a *Analyses) NeedsBindingGroup() bool {
	return a.needsBindingGroup
}

// collectScriptSymbols registers the script's top-level bindings.
func (a *Analyses) collectScriptSymbols() {
	for _, stmt := range a.store.Program.List {
		switch n := stmt.(type) {
		case *js.VarDecl:
			for i := range n.List {
				if v, ok := js.BindingVar(n.List[i].Binding); ok {
					a.addSymbol(js.VarName(v), scriptScope, js.RootVar(v))
				}
			}
		case *js.FuncDecl:
			if n.Name != nil {
				a.addSymbol(js.VarName(n.Name), scriptScope, js.RootVar(n.Name))
			}
		}
	}
}

// addBlockScopes gives each each-block its own scope holding the item and
// index bindings; the bindings are registered as mutated state runes so
// body reads go through $.get.
func (a *Analyses) addBlockScopes() {
	for _, owner := range a.store.Owners {
		if owner.Kind != hir.EachBlockOwner {
			continue
		}
		each := owner.Each

		node := a.store.GetNode(each.NodeID)
		parent := a.scopeFor(node.Owner)
		scope := a.addScope(parent)
		a.ownerScope[owner.ID] = scope

		a.bindPatternNames(each.Item, scope)
		if each.Index != hir.NoExpression {
			a.bindPatternNames(each.Index, scope)
		}
	}
}

// bindPatternNames registers every identifier of a binding pattern in the
// scope as a mutated state rune.
func (a *Analyses) bindPatternNames(exprID hir.ExpressionID, scope ScopeID) {
	expr := a.store.PeekExpression(exprID)
	rw := &js.Rewriter{
		Var: func(v *js.Var) js.Expr {
			if !js.IsUndeclared(v) {
				return nil
			}
			sym := a.addSymbol(js.VarName(v), scope, nil)
			a.runes[sym] = &Rune{Kind: RuneState, Symbol: sym, Mutated: true}
			return nil
		},
	}
	rw.Expr(expr)
}

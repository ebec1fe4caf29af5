package analyze

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/svelte-go/compiler/internal/hir"
	"github.com/svelte-go/compiler/internal/lower"
	"github.com/svelte-go/compiler/internal/parser"
)

func prepare(t *testing.T, source string) (*hir.Store, *Analyses) {
	t.Helper()
	tree, d := parser.Parse(source)
	assert.Assert(t, d == nil, "unexpected diagnostic: %v", d)
	store := lower.Lower(tree)
	return store, Analyze(store)
}

func findOwner(store *hir.Store, kind hir.OwnerKind) *hir.Owner {
	for _, owner := range store.Owners {
		if owner.Kind == kind {
			return owner
		}
	}
	return nil
}

func TestRuneDiscovery(t *testing.T) {
	_, a := prepare(t, `<script>
let n = $state(0);
let d = $derived(n * 2);
let plain = 1;
</script>`)

	n, ok := a.ResolveRune(hir.TemplateOwnerID, "n")
	assert.Assert(t, ok)
	assert.Equal(t, n.Kind, RuneState)
	assert.Equal(t, n.Mutated, false)

	d, ok := a.ResolveRune(hir.TemplateOwnerID, "d")
	assert.Assert(t, ok)
	assert.Equal(t, d.Kind, RuneDerived)

	_, ok = a.ResolveRune(hir.TemplateOwnerID, "plain")
	assert.Assert(t, !ok)
}

func TestScriptWriteMarksMutated(t *testing.T) {
	_, a := prepare(t, `<script>
let n = $state(0);
n = 1;
let m = $state(0);
m++;
let quiet = $state(0);
</script>`)

	n, _ := a.ResolveRune(hir.TemplateOwnerID, "n")
	assert.Equal(t, n.Mutated, true)

	m, _ := a.ResolveRune(hir.TemplateOwnerID, "m")
	assert.Equal(t, m.Mutated, true)

	quiet, _ := a.ResolveRune(hir.TemplateOwnerID, "quiet")
	assert.Equal(t, quiet.Mutated, false)
}

func TestBindDirectiveMarksMutated(t *testing.T) {
	_, a := prepare(t, `<script>let v = $state("");</script><input bind:value={v} />`)

	v, _ := a.ResolveRune(hir.TemplateOwnerID, "v")
	assert.Equal(t, v.Mutated, true)
}

func TestEachCollectionMarksMutated(t *testing.T) {
	_, a := prepare(t, `<script>let xs = $state([]);</script>{#each xs as item}x{/each}`)

	xs, _ := a.ResolveRune(hir.TemplateOwnerID, "xs")
	assert.Equal(t, xs.Mutated, true)
}

func TestEachScopeBindings(t *testing.T) {
	store, a := prepare(t, `{#each xs as item, i}<li>{item}</li>{/each}`)

	each := findOwner(store, hir.EachBlockOwner)
	assert.Assert(t, each != nil)

	item, ok := a.ResolveRune(each.ID, "item")
	assert.Assert(t, ok)
	assert.Equal(t, item.Mutated, true)

	index, ok := a.ResolveRune(each.ID, "i")
	assert.Assert(t, ok)
	assert.Equal(t, index.Mutated, true)

	// The bindings stay invisible outside the block.
	_, ok = a.ResolveRune(hir.TemplateOwnerID, "item")
	assert.Assert(t, !ok)
}

func TestReactiveClassification(t *testing.T) {
	store, a := prepare(t,
		`<script>let n = $state(0);
n = 1;
let quiet = $state(0);</script><p>{n}</p><p>{m()}</p><p>{quiet}</p><p>{other}</p>`)

	var interpolations []hir.ExpressionID
	for _, node := range store.Nodes {
		if node.Kind == hir.InterpolationNode {
			interpolations = append(interpolations, node.Expression)
		}
	}
	assert.Equal(t, len(interpolations), 4)

	assert.Equal(t, a.IsReactive(interpolations[0]), true, "mutated rune read")
	assert.Equal(t, a.IsReactive(interpolations[1]), true, "function call")
	assert.Equal(t, a.IsReactive(interpolations[2]), false, "unmutated rune read")
	assert.Equal(t, a.IsReactive(interpolations[3]), false, "free identifier")
}

func TestExpressionFlags(t *testing.T) {
	store, a := prepare(t, `<script>let n = $state(0);</script><p>{n + f()}</p>`)

	var expr hir.ExpressionID
	for _, node := range store.Nodes {
		if node.Kind == hir.InterpolationNode {
			expr = node.Expression
		}
	}

	flags := a.ExpressionFlags(expr)
	assert.Assert(t, flags.Has(FlagRuneReference))
	assert.Assert(t, flags.Has(FlagFunctionCall))
}

func TestArrowParamsShadowRunes(t *testing.T) {
	store, a := prepare(t, `<script>let n = $state(0);</script><p>{((n) => n)(1)}</p>`)

	var expr hir.ExpressionID
	for _, node := range store.Nodes {
		if node.Kind == hir.InterpolationNode {
			expr = node.Expression
		}
	}

	// The parameter binds every inner n, so no rune reference remains.
	assert.Assert(t, !a.ExpressionFlags(expr).Has(FlagRuneReference))
}

func TestContentTypes(t *testing.T) {
	store, a := prepare(t, `<div>x</div>`)
	assert.Assert(t, a.ContentOf(hir.TemplateOwnerID).Common.OnlyElement())

	div := findOwner(store, hir.ElementOwner)
	assert.Assert(t, a.ContentOf(div.ID).Common.OnlyText())

	_, a = prepare(t, `hello {name}`)
	assert.Assert(t, a.ContentOf(hir.TemplateOwnerID).Common.AnyTextLike())

	store, a = prepare(t, `{#if a}b{:else}<b>c</b>{/if}`)
	assert.Assert(t, a.ContentOf(hir.TemplateOwnerID).Common.OnlyFragmentOwner())

	block := findOwner(store, hir.IfBlockOwner)
	content := a.ContentOf(block.ID)
	assert.Assert(t, content.IsIf)
	assert.Assert(t, content.Consequent.OnlyText())
	assert.Assert(t, content.Alternate.OnlyElement())
}

func TestDynamicPropagation(t *testing.T) {
	store, a := prepare(t, `<div><span>{x}</span></div><p>static</p>`)

	nodes := store.Template().Nodes
	div := store.GetNode(nodes[0])
	p := store.GetNode(nodes[1])

	assert.Assert(t, a.IsDynamic(div.ID), "element with dynamic descendant")
	assert.Assert(t, !a.IsDynamic(p.ID), "fully static element")
}

func TestStaticExceptions(t *testing.T) {
	store, a := prepare(t, `<img src="a.png" /><input value="x" /><div dir="rtl">y</div>`)

	nodes := store.Template().Nodes
	assert.Assert(t, a.IsDynamic(store.GetNode(nodes[0]).ID), "img src")
	assert.Assert(t, a.IsDynamic(store.GetNode(nodes[1]).ID), "input value")
	assert.Assert(t, a.IsDynamic(store.GetNode(nodes[2]).ID), "dir attribute")
}

func TestCustomElementIsDynamic(t *testing.T) {
	store, a := prepare(t, `<my-widget>x</my-widget>`)

	node := store.GetNode(store.Template().Nodes[0])
	assert.Assert(t, a.IsDynamic(node.ID))
}

func TestNeedsBindingGroup(t *testing.T) {
	_, a := prepare(t, `<input bind:group={choice} />`)
	assert.Assert(t, a.NeedsBindingGroup())

	_, a = prepare(t, `<input bind:value={choice} />`)
	assert.Assert(t, !a.NeedsBindingGroup())
}

func TestIdentifierGen(t *testing.T) {
	g := NewIdentifierGen()

	assert.Equal(t, g.Generate("text"), "text")
	assert.Equal(t, g.Generate("text"), "text_1")
	assert.Equal(t, g.Generate("text"), "text_2")
	assert.Equal(t, g.Generate("my-div"), "my_div")
	assert.Equal(t, g.Generate("1st"), "_1st")
	assert.Equal(t, g.Generate("$root"), "$root")
	assert.Equal(t, g.Generate("a b"), "a_b")
}

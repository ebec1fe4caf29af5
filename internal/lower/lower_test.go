package lower

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/svelte-go/compiler/internal/ast"
	"github.com/svelte-go/compiler/internal/hir"
	"github.com/svelte-go/compiler/internal/parser"
)

func prepare(t *testing.T, source string) *hir.Store {
	t.Helper()
	tree, d := parser.Parse(source)
	assert.Assert(t, d == nil, "unexpected diagnostic: %v", d)
	return Lower(tree)
}

func templateNodes(store *hir.Store) []hir.NodeID {
	return store.Template().Nodes
}

func TestTrimWhitespaceOnlyTemplate(t *testing.T) {
	store := prepare(t, " \n\t\r")

	assert.Equal(t, len(templateNodes(store)), 0)
}

func TestTrimEdgesOfSingleText(t *testing.T) {
	store := prepare(t, "\ttext\t")

	nodes := templateNodes(store)
	assert.Equal(t, len(nodes), 1)

	text := store.GetNode(nodes[0])
	assert.Equal(t, text.Kind, hir.TextNode)
	assert.Equal(t, text.Value, "text")
}

func TestTrimAroundElement(t *testing.T) {
	store := prepare(t, "\t<input />\t")

	nodes := templateNodes(store)
	assert.Equal(t, len(nodes), 1)
	assert.Equal(t, store.GetNode(nodes[0]).Kind, hir.ElementNode)
}

func TestTrimBetweenRight(t *testing.T) {
	store := prepare(t, "some_text      <input />\t")

	nodes := templateNodes(store)
	assert.Equal(t, len(nodes), 2)
	assert.Equal(t, store.GetNode(nodes[0]).Value, "some_text ")
}

func TestTrimBetweenLeft(t *testing.T) {
	store := prepare(t, "<input />     some_text")

	nodes := templateNodes(store)
	assert.Equal(t, len(nodes), 2)
	assert.Equal(t, store.GetNode(nodes[1]).Value, " some_text")
}

func TestCommentsDropBeforeTrim(t *testing.T) {
	store := prepare(t, "<div>    <!-- comment -->   </div>")

	nodes := templateNodes(store)
	assert.Equal(t, len(nodes), 1)

	div := store.GetNode(nodes[0])
	assert.Equal(t, div.Kind, hir.ElementNode)
	assert.Equal(t, len(div.Element.Nodes), 0)
}

func TestWhitespaceAroundInterpolationSurvives(t *testing.T) {
	store := prepare(t, "a {b} c")

	nodes := templateNodes(store)
	assert.Equal(t, len(nodes), 1)

	concat := store.GetNode(nodes[0])
	assert.Equal(t, concat.Kind, hir.ConcatenationNode)
	assert.Equal(t, len(concat.Parts), 3)
	assert.Equal(t, concat.Parts[0].Text, "a ")
	assert.Equal(t, concat.Parts[1].IsExpression, true)
	assert.Equal(t, concat.Parts[2].Text, " c")
}

func TestCompressSmoke(t *testing.T) {
	store := prepare(t,
		`some text { name }<div class:toggle bind:value name="" ok title="idx: {idx}">inside div</div>{#if true}text{/if}`,
	)

	assert.Equal(t, len(store.Nodes), 6)
	assert.Equal(t, len(store.Owners), 3)
	assert.Equal(t, len(store.Expressions), 5)

	assert.Equal(t, len(templateNodes(store)), 3)

	concat := store.GetNode(hir.NodeID(1))
	assert.Equal(t, concat.Kind, hir.ConcatenationNode)
	assert.Equal(t, concat.Owner, hir.TemplateOwnerID)
}

func TestNoAdjacentTextLikePairsSurvive(t *testing.T) {
	store := prepare(t, "a{b}c{d}<hr/>{e}{f}tail")

	for _, owner := range store.Owners {
		nodes := owner.Nodes()
		for i := 1; i < len(nodes); i++ {
			prev := store.GetNode(nodes[i-1])
			cur := store.GetNode(nodes[i])
			assert.Assert(t, !(prev.IsTextLike() && cur.IsTextLike()),
				"adjacent text-like nodes survived lowering")
		}
	}
}

func TestNoEmptyTextSurvives(t *testing.T) {
	store := prepare(t, "  <b>x</b>  y  <i>z</i>  ")

	for _, node := range store.Nodes {
		if node.Kind == hir.TextNode {
			assert.Assert(t, node.Value != "", "empty text node survived lowering")
		}
	}
}

func TestTrimIdempotence(t *testing.T) {
	build := func() []*ast.Node {
		tree, d := parser.Parse("  a  <b>x</b>  c  ")
		assert.Assert(t, d == nil)
		return tree.Template
	}

	once := trimTextNodes(build())
	onceText := ast.FormatFragment(once)
	twice := trimTextNodes(once)

	assert.Equal(t, onceText, ast.FormatFragment(twice))
	assert.Equal(t, len(once), len(twice))
}

func TestHasSpreadFlag(t *testing.T) {
	store := prepare(t, `<div {...props}>x</div>`)

	div := store.GetNode(templateNodes(store)[0])
	assert.Equal(t, div.Element.HasSpread, true)
}

func TestNodeToOwnerInvariant(t *testing.T) {
	store := prepare(t, `<div>{#if a}b{/if}</div>{#each xs as x}y{/each}`)

	for _, owner := range store.Owners {
		mapped, ok := store.OwnerIDOf(owner.NodeID)
		assert.Assert(t, ok)
		assert.Equal(t, mapped, owner.ID)
	}
}

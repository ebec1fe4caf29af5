package hir

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/svelte-go/compiler/internal/js"
)

func newTestStore() *Store {
	program, _ := js.ParseProgram("")
	return NewStore(program, false)
}

func TestExpressionSingleTake(t *testing.T) {
	store := newTestStore()

	expr, err := js.ParseExpression("a + b")
	assert.NilError(t, err)

	id := store.PushExpression(expr)

	assert.Assert(t, store.PeekExpression(id) != nil)
	assert.Assert(t, store.TakeExpression(id) != nil)

	defer func() {
		assert.Assert(t, recover() != nil, "second take must panic")
	}()
	store.TakeExpression(id)
}

func TestPeekAfterTakePanics(t *testing.T) {
	store := newTestStore()

	expr, err := js.ParseExpression("x")
	assert.NilError(t, err)
	id := store.PushExpression(expr)
	store.TakeExpression(id)

	defer func() {
		assert.Assert(t, recover() != nil, "peek after take must panic")
	}()
	store.PeekExpression(id)
}

func TestIDAssignment(t *testing.T) {
	store := newTestStore()

	template := &Template{}
	phantom := store.PushNode(&Node{Kind: PhantomNode})
	owner := store.PushOwner(&Owner{Kind: TemplateOwner, NodeID: phantom, Template: template})

	assert.Equal(t, phantom, PhantomNodeID)
	assert.Equal(t, owner, TemplateOwnerID)
	assert.Equal(t, store.Template(), template)

	text := store.PushNode(&Node{Kind: TextNode, Owner: owner, Value: "x"})
	template.Nodes = append(template.Nodes, text)

	assert.Equal(t, store.FirstOf(owner).Value, "x")
	assert.Equal(t, store.OwnerOf(text), owner)
}

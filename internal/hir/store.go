package hir

import (
	"fmt"

	"github.com/svelte-go/compiler/internal/js"
)

// An ExprCell owns one interned expression. Emitters move the expression
// out exactly once; a second take is a programmer error and panics.
type ExprCell struct {
	expr  js.Expr
	taken bool
}

// Peek reads the expression without consuming it. Analyses use this; it is
// invalid after Take.
func (c *ExprCell) Peek() js.Expr {
	if c.taken {
		panic("hir: expression peeked after take")
	}
	return c.expr
}

// Take moves the expression out, leaving a placeholder behind.
func (c *ExprCell) Take() js.Expr {
	if c.taken {
		panic("hir: expression taken twice")
	}
	c.taken = true
	expr := c.expr
	c.expr = nil
	return expr
}

func (c *ExprCell) Taken() bool {
	return c.taken
}

// The Store is the flat, index-addressed home of every HIR node, owner,
// expression and attribute of one compilation.
type Store struct {
	Nodes       []*Node
	Owners      []*Owner
	Expressions []*ExprCell
	Attributes  []*Attribute
	NodeToOwner map[NodeID]OwnerID

	// The embedded script subprogram; opaque to the template pipeline.
	Program    *js.AST
	TypeScript bool
}

func NewStore(program *js.AST, typescript bool) *Store {
	return &Store{
		NodeToOwner: make(map[NodeID]OwnerID),
		Program:     program,
		TypeScript:  typescript,
	}
}

func (s *Store) PushNode(node *Node) NodeID {
	id := NodeID(len(s.Nodes))
	node.ID = id
	s.Nodes = append(s.Nodes, node)
	return id
}

func (s *Store) PushOwner(owner *Owner) OwnerID {
	id := OwnerID(len(s.Owners))
	owner.ID = id
	s.Owners = append(s.Owners, owner)
	s.NodeToOwner[owner.NodeID] = id
	return id
}

func (s *Store) PushExpression(expr js.Expr) ExpressionID {
	id := ExpressionID(len(s.Expressions))
	s.Expressions = append(s.Expressions, &ExprCell{expr: expr})
	return id
}

func (s *Store) PushAttribute(attr *Attribute) AttributeID {
	id := AttributeID(len(s.Attributes))
	s.Attributes = append(s.Attributes, attr)
	return id
}

func (s *Store) GetNode(id NodeID) *Node {
	return s.Nodes[id]
}

func (s *Store) GetOwner(id OwnerID) *Owner {
	return s.Owners[id]
}

func (s *Store) GetAttribute(id AttributeID) *Attribute {
	return s.Attributes[id]
}

// PeekExpression reads an interned expression without moving it.
func (s *Store) PeekExpression(id ExpressionID) js.Expr {
	return s.Expressions[id].Peek()
}

// TakeExpression moves an interned expression out of the store.
func (s *Store) TakeExpression(id ExpressionID) js.Expr {
	return s.Expressions[id].Take()
}

// Template returns the root owner.
func (s *Store) Template() *Template {
	owner := s.GetOwner(TemplateOwnerID)
	if owner.Kind != TemplateOwner {
		panic(fmt.Sprintf("hir: owner 0 is %v, want template", owner.Kind))
	}
	return owner.Template
}

// OwnerOf maps a node to the owner whose fragment contains it.
func (s *Store) OwnerOf(id NodeID) OwnerID {
	return s.GetNode(id).Owner
}

// OwnerIDOf maps an owner-bearing node to its own owner id.
func (s *Store) OwnerIDOf(id NodeID) (OwnerID, bool) {
	owner, ok := s.NodeToOwner[id]
	return owner, ok
}

// FirstOf returns the first node of an owner's fragment, or nil.
func (s *Store) FirstOf(id OwnerID) *Node {
	first := s.GetOwner(id).First()
	if first == PhantomNodeID {
		return nil
	}
	return s.GetNode(first)
}

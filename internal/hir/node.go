package hir

import (
	"strconv"

	"golang.org/x/net/html/atom"

	"github.com/svelte-go/compiler/internal/ast"
)

type NodeKind uint32

const (
	PhantomNode NodeKind = iota
	TextNode
	InterpolationNode
	ConcatenationNode
	ElementNode
	IfBlockNode
	EachBlockNode
	CommentNode
)

func (k NodeKind) String() string {
	switch k {
	case PhantomNode:
		return "Phantom"
	case TextNode:
		return "Text"
	case InterpolationNode:
		return "Interpolation"
	case ConcatenationNode:
		return "Concatenation"
	case ElementNode:
		return "Element"
	case IfBlockNode:
		return "IfBlock"
	case EachBlockNode:
		return "EachBlock"
	case CommentNode:
		return "Comment"
	}
	return "Invalid(" + strconv.Itoa(int(k)) + ")"
}

// A Node is one flattened template node. Owner is the owner whose fragment
// contains it. The payload pointer for owner-bearing kinds is shared with
// the owner table.
type Node struct {
	Kind  NodeKind
	ID    NodeID
	Owner OwnerID

	// TextNode
	Value string

	// InterpolationNode
	Expression ExpressionID

	// ConcatenationNode
	Parts []ConcatenationPart

	Element *Element
	If      *IfBlock
	Each    *EachBlock
}

func (n *Node) IsText() bool {
	return n.Kind == TextNode
}

func (n *Node) IsElement() bool {
	return n.Kind == ElementNode
}

func (n *Node) IsInterpolationLike() bool {
	return n.Kind == InterpolationNode || n.Kind == ConcatenationNode
}

func (n *Node) IsTextLike() bool {
	return n.Kind == TextNode || n.IsInterpolationLike()
}

func (n *Node) IsElseIfBlock() bool {
	return n.Kind == IfBlockNode && n.If.IsElseIf
}

// A ConcatenationPart is literal text or an interned expression, in the
// original child order.
type ConcatenationPart struct {
	IsExpression bool
	Text         string
	Expression   ExpressionID
}

type Element struct {
	NodeID  NodeID
	OwnerID OwnerID

	Name        string
	DataAtom    atom.Atom
	SelfClosing bool
	Attributes  []AttributeID
	Nodes       []NodeID
	HasSpread   bool
}

// IsCustomElement reports a dash in the tag name.
func (e *Element) IsCustomElement() bool {
	for i := 0; i < len(e.Name); i++ {
		if e.Name[i] == '-' {
			return true
		}
	}
	return false
}

type IfBlock struct {
	NodeID  NodeID
	OwnerID OwnerID

	IsElseIf     bool
	Test         ExpressionID
	Consequent   []NodeID
	Alternate    []NodeID
	HasAlternate bool
}

type EachBlock struct {
	NodeID  NodeID
	OwnerID OwnerID

	Collection ExpressionID
	Item       ExpressionID
	ItemRaw    string
	Index      ExpressionID
	IndexRaw   string
	Key        ExpressionID
	Nodes      []NodeID
}

type Template struct {
	Nodes []NodeID
}

type OwnerKind uint32

const (
	TemplateOwner OwnerKind = iota
	ElementOwner
	IfBlockOwner
	EachBlockOwner
)

// An Owner is a node that owns a child fragment.
type Owner struct {
	Kind   OwnerKind
	ID     OwnerID
	NodeID NodeID

	Template *Template
	Element  *Element
	If       *IfBlock
	Each     *EachBlock
}

// Nodes returns the owner's fragment; for if-blocks this is the consequent
// followed by the alternate.
func (o *Owner) Nodes() []NodeID {
	switch o.Kind {
	case TemplateOwner:
		return o.Template.Nodes
	case ElementOwner:
		return o.Element.Nodes
	case IfBlockOwner:
		if o.If.HasAlternate {
			out := make([]NodeID, 0, len(o.If.Consequent)+len(o.If.Alternate))
			out = append(out, o.If.Consequent...)
			return append(out, o.If.Alternate...)
		}
		return o.If.Consequent
	case EachBlockOwner:
		return o.Each.Nodes
	}
	return nil
}

// First returns the first node of the owner's fragment, or PhantomNodeID.
func (o *Owner) First() NodeID {
	nodes := o.Nodes()
	if len(nodes) == 0 {
		return PhantomNodeID
	}
	return nodes[0]
}

type AttributeKind uint32

const (
	StringAttribute AttributeKind = iota
	BooleanAttribute
	ExpressionAttribute
	ConcatenationAttribute
	SpreadAttribute
	ClassDirective
	BindDirective
)

// An Attribute is one interned element attribute.
type Attribute struct {
	Kind       AttributeKind
	Name       string
	Value      string
	Shorthand  bool
	Expression ExpressionID
	Parts      []ConcatenationPart
	BindKind   ast.BindKind
}

// Package ast holds the parser's output tree. Nodes are typed by NodeType
// with child slices; block-style nodes own ordered fragments.
package ast

import (
	"strconv"

	"golang.org/x/net/html/atom"

	"github.com/svelte-go/compiler/internal/js"
	"github.com/svelte-go/compiler/internal/loc"
)

type NodeType uint32

const (
	ElementNode NodeType = iota
	TextNode
	InterpolationNode
	IfBlockNode
	EachBlockNode
	CommentNode
	ScriptNode
)

func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case InterpolationNode:
		return "Interpolation"
	case IfBlockNode:
		return "IfBlock"
	case EachBlockNode:
		return "EachBlock"
	case CommentNode:
		return "Comment"
	case ScriptNode:
		return "Script"
	}
	return "Invalid(" + strconv.Itoa(int(t)) + ")"
}

// A Node is one template node. Field groups apply by Type; unused groups
// stay zero.
type Node struct {
	Type NodeType
	Loc  loc.Span

	// ElementNode
	Name        string
	DataAtom    atom.Atom
	SelfClosing bool
	Attributes  []*Attribute

	// Element children, if-block consequent, each-block body.
	Children []*Node

	// TextNode and CommentNode payload.
	Data string

	// Interpolation body, if-block test, each-block collection.
	Expression    js.Expr
	RawExpression string

	// IfBlockNode
	Alternate    []*Node
	HasAlternate bool
	IsElseIf     bool

	// EachBlockNode
	Item     js.Expr
	RawItem  string
	Index    js.Expr
	RawIndex string
	Key      js.Expr
	RawKey   string

	// ScriptNode
	Program    *js.AST
	TypeScript bool
}

func (n *Node) IsElement() bool {
	return n.Type == ElementNode
}

func (n *Node) IsText() bool {
	return n.Type == TextNode
}

func (n *Node) IsInterpolation() bool {
	return n.Type == InterpolationNode
}

func (n *Node) IsIfBlock() bool {
	return n.Type == IfBlockNode
}

// IsCustomElement reports whether the element name declares a custom
// element (contains a dash).
func (n *Node) IsCustomElement() bool {
	if n.Type != ElementNode {
		return false
	}
	for i := 0; i < len(n.Name); i++ {
		if n.Name[i] == '-' {
			return true
		}
	}
	return false
}

// The Ast couples the template fragment with the optional top-level script.
type Ast struct {
	Template []*Node
	Script   *Node
}

type AttributeKind uint32

const (
	// StringAttribute is name="value" (or unquoted).
	StringAttribute AttributeKind = iota
	// BooleanAttribute is a bare name.
	BooleanAttribute
	// ExpressionAttribute is name={expr} or the {name} shorthand.
	ExpressionAttribute
	// ConcatenationAttribute is a quoted value with embedded expressions.
	ConcatenationAttribute
	// SpreadAttribute is {...expr}.
	SpreadAttribute
	// ClassDirective is class:name[={expr}].
	ClassDirective
	// BindDirective is bind:name[={expr}].
	BindDirective
)

func (k AttributeKind) String() string {
	switch k {
	case StringAttribute:
		return "string"
	case BooleanAttribute:
		return "boolean"
	case ExpressionAttribute:
		return "expression"
	case ConcatenationAttribute:
		return "concatenation"
	case SpreadAttribute:
		return "spread"
	case ClassDirective:
		return "class-directive"
	case BindDirective:
		return "bind-directive"
	}
	return "Invalid(" + strconv.Itoa(int(k)) + ")"
}

type BindKind uint32

const (
	BindUnknown BindKind = iota
	BindValue
	BindGroup
	BindChecked
)

func BindKindFromName(name string) BindKind {
	switch name {
	case "value":
		return BindValue
	case "group":
		return BindGroup
	case "checked":
		return BindChecked
	}
	return BindUnknown
}

// A ConcatenationPart is either literal text or an embedded expression.
type ConcatenationPart struct {
	Text       string
	Expression js.Expr
	Raw        string
	Loc        loc.Span
}

func (p ConcatenationPart) IsExpression() bool {
	return p.Expression != nil
}

// An Attribute is one typed attribute of an element.
type Attribute struct {
	Kind   AttributeKind
	Name   string
	KeyLoc loc.Span

	// StringAttribute
	Value string

	// Expression-bearing kinds.
	Shorthand     bool
	Expression    js.Expr
	RawExpression string
	ExprLoc       loc.Span

	// ConcatenationAttribute
	Parts []ConcatenationPart

	// BindDirective
	BindKind BindKind
}

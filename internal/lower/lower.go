// Package lower flattens the parser's AST into the HIR store: whitespace is
// trimmed, text/interpolation runs compress into concatenations, every
// embedded expression is interned, and owner relationships go flat.
package lower

import (
	"github.com/svelte-go/compiler/internal/ast"
	"github.com/svelte-go/compiler/internal/hir"
	"github.com/svelte-go/compiler/internal/js"
)

type lowerer struct {
	store *hir.Store
}

// Lower consumes the AST and produces the HIR store. A missing script
// lowers to an empty program.
func Lower(a *ast.Ast) *hir.Store {
	var program *js.AST
	typescript := false
	if a.Script != nil {
		program = a.Script.Program
		typescript = a.Script.TypeScript
	} else {
		program, _ = js.ParseProgram("")
	}

	store := hir.NewStore(program, typescript)
	l := &lowerer{store: store}

	template := &hir.Template{}
	store.PushNode(&hir.Node{Kind: hir.PhantomNode, Owner: hir.TemplateOwnerID})
	store.PushOwner(&hir.Owner{Kind: hir.TemplateOwner, NodeID: hir.PhantomNodeID, Template: template})

	template.Nodes = l.lowerNodes(a.Template, hir.TemplateOwnerID)

	return store
}

func (l *lowerer) lowerNodes(nodes []*ast.Node, owner hir.OwnerID) []hir.NodeID {
	kept := nodes[:0:0]
	for _, n := range nodes {
		if n.Type == ast.CommentNode {
			continue
		}
		kept = append(kept, n)
	}

	trimmed := trimTextNodes(kept)
	return l.compressAndLower(trimmed, owner)
}

func (l *lowerer) lowerNode(n *ast.Node, owner hir.OwnerID) hir.NodeID {
	switch n.Type {
	case ast.TextNode:
		return l.lowerText(n, owner)
	case ast.InterpolationNode:
		return l.lowerInterpolation(n, owner)
	case ast.ElementNode:
		return l.lowerElement(n, owner)
	case ast.IfBlockNode:
		return l.lowerIfBlock(n, owner)
	case ast.EachBlockNode:
		return l.lowerEachBlock(n, owner)
	}
	panic("lower: unexpected node type " + n.Type.String())
}

func (l *lowerer) lowerText(n *ast.Node, owner hir.OwnerID) hir.NodeID {
	return l.store.PushNode(&hir.Node{
		Kind:  hir.TextNode,
		Owner: owner,
		Value: n.Data,
	})
}

func (l *lowerer) lowerInterpolation(n *ast.Node, owner hir.OwnerID) hir.NodeID {
	return l.store.PushNode(&hir.Node{
		Kind:       hir.InterpolationNode,
		Owner:      owner,
		Expression: l.store.PushExpression(n.Expression),
	})
}

func (l *lowerer) lowerElement(n *ast.Node, parentOwner hir.OwnerID) hir.NodeID {
	element := &hir.Element{
		Name:        n.Name,
		DataAtom:    n.DataAtom,
		SelfClosing: n.SelfClosing,
	}

	nodeID := l.store.PushNode(&hir.Node{
		Kind:    hir.ElementNode,
		Owner:   parentOwner,
		Element: element,
	})
	element.NodeID = nodeID

	ownerID := l.store.PushOwner(&hir.Owner{
		Kind:    hir.ElementOwner,
		NodeID:  nodeID,
		Element: element,
	})
	element.OwnerID = ownerID

	l.lowerAttributes(n.Attributes, element)
	element.Nodes = l.lowerNodes(n.Children, ownerID)

	return nodeID
}

func (l *lowerer) lowerIfBlock(n *ast.Node, parentOwner hir.OwnerID) hir.NodeID {
	block := &hir.IfBlock{
		IsElseIf:     n.IsElseIf,
		HasAlternate: n.HasAlternate,
	}

	nodeID := l.store.PushNode(&hir.Node{
		Kind:  hir.IfBlockNode,
		Owner: parentOwner,
		If:    block,
	})
	block.NodeID = nodeID

	ownerID := l.store.PushOwner(&hir.Owner{
		Kind:   hir.IfBlockOwner,
		NodeID: nodeID,
		If:     block,
	})
	block.OwnerID = ownerID

	block.Test = l.store.PushExpression(n.Expression)
	block.Consequent = l.lowerNodes(n.Children, ownerID)
	if n.HasAlternate {
		block.Alternate = l.lowerNodes(n.Alternate, ownerID)
	}

	return nodeID
}

func (l *lowerer) lowerEachBlock(n *ast.Node, parentOwner hir.OwnerID) hir.NodeID {
	block := &hir.EachBlock{
		ItemRaw:  n.RawItem,
		IndexRaw: n.RawIndex,
		Index:    hir.NoExpression,
		Key:      hir.NoExpression,
	}

	nodeID := l.store.PushNode(&hir.Node{
		Kind:  hir.EachBlockNode,
		Owner: parentOwner,
		Each:  block,
	})
	block.NodeID = nodeID

	ownerID := l.store.PushOwner(&hir.Owner{
		Kind:   hir.EachBlockOwner,
		NodeID: nodeID,
		Each:   block,
	})
	block.OwnerID = ownerID

	block.Collection = l.store.PushExpression(n.Expression)
	block.Item = l.store.PushExpression(n.Item)
	if n.Index != nil {
		block.Index = l.store.PushExpression(n.Index)
	}
	if n.Key != nil {
		block.Key = l.store.PushExpression(n.Key)
	}
	block.Nodes = l.lowerNodes(n.Children, ownerID)

	return nodeID
}

func (l *lowerer) lowerAttributes(attrs []*ast.Attribute, element *hir.Element) {
	for _, attr := range attrs {
		element.Attributes = append(element.Attributes, l.lowerAttribute(attr, element))
	}
}

func (l *lowerer) lowerAttribute(attr *ast.Attribute, element *hir.Element) hir.AttributeID {
	lowered := &hir.Attribute{
		Name:       attr.Name,
		Value:      attr.Value,
		Shorthand:  attr.Shorthand,
		Expression: hir.NoExpression,
		BindKind:   attr.BindKind,
	}

	switch attr.Kind {
	case ast.StringAttribute:
		lowered.Kind = hir.StringAttribute
	case ast.BooleanAttribute:
		lowered.Kind = hir.BooleanAttribute
	case ast.ExpressionAttribute:
		lowered.Kind = hir.ExpressionAttribute
		lowered.Expression = l.store.PushExpression(attr.Expression)
	case ast.ConcatenationAttribute:
		lowered.Kind = hir.ConcatenationAttribute
		for _, part := range attr.Parts {
			if part.IsExpression() {
				lowered.Parts = append(lowered.Parts, hir.ConcatenationPart{
					IsExpression: true,
					Expression:   l.store.PushExpression(part.Expression),
				})
			} else {
				lowered.Parts = append(lowered.Parts, hir.ConcatenationPart{Text: part.Text})
			}
		}
	case ast.SpreadAttribute:
		lowered.Kind = hir.SpreadAttribute
		lowered.Expression = l.store.PushExpression(attr.Expression)
		element.HasSpread = true
	case ast.ClassDirective:
		lowered.Kind = hir.ClassDirective
		lowered.Expression = l.store.PushExpression(attr.Expression)
	case ast.BindDirective:
		lowered.Kind = hir.BindDirective
		lowered.Expression = l.store.PushExpression(attr.Expression)
	}

	return l.store.PushAttribute(lowered)
}

func (l *lowerer) compressAndLower(nodes []*ast.Node, owner hir.OwnerID) []hir.NodeID {
	var toCompress []*ast.Node
	var result []hir.NodeID

	flush := func() {
		switch {
		case len(toCompress) == 1:
			result = append(result, l.lowerNode(toCompress[0], owner))
		case len(toCompress) > 1:
			result = append(result, l.lowerConcatenation(toCompress, owner))
		}
		toCompress = nil
	}

	for _, n := range nodes {
		if n.Type == ast.TextNode || n.Type == ast.InterpolationNode {
			if n.Type == ast.TextNode && n.Data == "" {
				continue
			}
			toCompress = append(toCompress, n)
			continue
		}

		flush()
		result = append(result, l.lowerNode(n, owner))
	}

	flush()
	return result
}

func (l *lowerer) lowerConcatenation(nodes []*ast.Node, owner hir.OwnerID) hir.NodeID {
	parts := make([]hir.ConcatenationPart, 0, len(nodes))
	for _, n := range nodes {
		if n.Type == ast.TextNode {
			parts = append(parts, hir.ConcatenationPart{Text: n.Data})
			continue
		}
		parts = append(parts, hir.ConcatenationPart{
			IsExpression: true,
			Expression:   l.store.PushExpression(n.Expression),
		})
	}

	return l.store.PushNode(&hir.Node{
		Kind:  hir.ConcatenationNode,
		Owner: owner,
		Parts: parts,
	})
}

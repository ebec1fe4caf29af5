// Package parser builds the template AST from the scanner's token stream
// with a stack-based block matcher.
package parser

import (
	"strings"

	"github.com/svelte-go/compiler/internal/ast"
	"github.com/svelte-go/compiler/internal/js"
	"github.com/svelte-go/compiler/internal/loc"
	"github.com/svelte-go/compiler/internal/scanner"
)

type Parser struct {
	source  string
	stack   []*ast.Node
	roots   []*ast.Node
	scripts []*ast.Node
}

// Parse scans and parses one source buffer.
func Parse(source string) (*ast.Ast, *loc.Diagnostic) {
	tokens, d := scanner.New(source).ScanTokens()
	if d != nil {
		return nil, d
	}

	p := &Parser{source: source}

	for i := range tokens {
		tok := &tokens[i]
		var d *loc.Diagnostic
		switch tok.Type {
		case scanner.TextToken:
			p.addLeaf(&ast.Node{Type: ast.TextNode, Data: tok.Lexeme, Loc: tok.Loc})
		case scanner.CommentToken:
			body := strings.TrimSuffix(strings.TrimPrefix(tok.Lexeme, "<!--"), "-->")
			p.addLeaf(&ast.Node{Type: ast.CommentNode, Data: body, Loc: tok.Loc})
		case scanner.StartTagToken:
			d = p.parseStartTag(tok)
		case scanner.EndTagToken:
			d = p.parseEndTag(tok)
		case scanner.InterpolationToken:
			d = p.parseInterpolation(tok)
		case scanner.StartIfToken:
			d = p.parseStartIf(tok)
		case scanner.ElseToken:
			d = p.parseElse(tok)
		case scanner.EndIfToken:
			d = p.parseEndIf(tok)
		case scanner.StartEachToken:
			d = p.parseStartEach(tok)
		case scanner.EndEachToken:
			d = p.parseEndEach(tok)
		case scanner.ScriptToken:
			d = p.parseScript(tok)
		case scanner.EOFToken:
			// done
		}
		if d != nil {
			return nil, d
		}
	}

	if len(p.stack) > 0 {
		return nil, loc.UnclosedNode(p.stack[len(p.stack)-1].Loc)
	}

	if len(p.scripts) > 1 {
		return nil, loc.OnlyOneTopLevelScript(p.scripts[len(p.scripts)-1].Loc)
	}

	result := &ast.Ast{Template: p.roots}
	if len(p.scripts) == 1 {
		result.Script = p.scripts[0]
	}
	return result, nil
}

// addChild appends a node to the open parent's active fragment. Returns
// false when there is no open parent.
func (p *Parser) addChild(node *ast.Node) bool {
	if len(p.stack) == 0 {
		return false
	}
	parent := p.stack[len(p.stack)-1]
	if parent.Type == ast.IfBlockNode && parent.HasAlternate {
		parent.Alternate = append(parent.Alternate, node)
		return true
	}
	parent.Children = append(parent.Children, node)
	return true
}

// addNode opens a new node: it joins its parent (if any) and goes onto the
// stack.
func (p *Parser) addNode(node *ast.Node) {
	p.addChild(node)
	p.stack = append(p.stack, node)
}

// addLeaf adds a childless node; without a parent it lands at the root.
func (p *Parser) addLeaf(node *ast.Node) {
	if !p.addChild(node) {
		p.roots = append(p.roots, node)
	}
}

func (p *Parser) pop() *ast.Node {
	if len(p.stack) == 0 {
		return nil
	}
	node := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	return node
}

func (p *Parser) top() *ast.Node {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

func parseExpression(value string, span loc.Span) (js.Expr, *loc.Diagnostic) {
	expr, err := js.ParseExpression(value)
	if err != nil {
		return nil, loc.InvalidExpression(span)
	}
	return expr, nil
}

func (p *Parser) parseStartTag(tok *scanner.Token) *loc.Diagnostic {
	tag := tok.StartTag

	attributes, d := p.parseAttributes(tag.Attributes)
	if d != nil {
		return d
	}

	node := &ast.Node{
		Type:        ast.ElementNode,
		Loc:         tok.Loc,
		Name:        tag.Name,
		DataAtom:    tag.DataAtom,
		SelfClosing: tag.SelfClosing,
		Attributes:  attributes,
	}

	if tag.SelfClosing {
		p.addLeaf(node)
	} else {
		p.addNode(node)
	}
	return nil
}

func (p *Parser) parseEndTag(tok *scanner.Token) *loc.Diagnostic {
	node := p.pop()
	if node == nil || node.Type != ast.ElementNode || node.Name != tok.EndTag.Name {
		return loc.NoElementToClose(tok.Loc)
	}

	node.Loc = node.Loc.Merge(tok.Loc)

	if len(p.stack) == 0 {
		p.roots = append(p.roots, node)
	}
	return nil
}

func (p *Parser) parseInterpolation(tok *scanner.Token) *loc.Diagnostic {
	expr, d := parseExpression(tok.Expression.Value, tok.Loc)
	if d != nil {
		return d
	}
	p.addLeaf(&ast.Node{
		Type:          ast.InterpolationNode,
		Loc:           tok.Loc,
		Expression:    expr,
		RawExpression: tok.Expression.Value,
	})
	return nil
}

func (p *Parser) parseStartIf(tok *scanner.Token) *loc.Diagnostic {
	test, d := parseExpression(tok.Expression.Value, tok.Loc)
	if d != nil {
		return d
	}
	p.addNode(&ast.Node{
		Type:          ast.IfBlockNode,
		Loc:           tok.Loc,
		Expression:    test,
		RawExpression: tok.Expression.Value,
	})
	return nil
}

func (p *Parser) parseElse(tok *scanner.Token) *loc.Diagnostic {
	block := p.top()
	if block == nil || block.Type != ast.IfBlockNode {
		return loc.NoIfBlockForElse(tok.Loc)
	}

	block.HasAlternate = true
	block.Alternate = nil
	block.Loc = block.Loc.Merge(tok.Loc)

	if tok.Else.ElseIf {
		test, d := parseExpression(tok.Else.Expression.Value, tok.Loc)
		if d != nil {
			return d
		}
		p.addNode(&ast.Node{
			Type:          ast.IfBlockNode,
			Loc:           tok.Loc,
			IsElseIf:      true,
			Expression:    test,
			RawExpression: tok.Else.Expression.Value,
		})
	}
	return nil
}

func (p *Parser) parseEndIf(tok *scanner.Token) *loc.Diagnostic {
	for {
		node := p.pop()
		if node == nil || node.Type != ast.IfBlockNode {
			return loc.NoIfBlockToClose(tok.Loc)
		}

		node.Loc = node.Loc.Merge(tok.Loc)

		if !node.IsElseIf {
			if len(p.stack) == 0 {
				p.roots = append(p.roots, node)
			}
			return nil
		}
	}
}

func (p *Parser) parseStartEach(tok *scanner.Token) *loc.Diagnostic {
	each := tok.Each

	collection, d := parseExpression(each.Collection.Value, tok.Loc)
	if d != nil {
		return d
	}
	item, d := parseExpression(each.Item.Value, tok.Loc)
	if d != nil {
		return d
	}

	node := &ast.Node{
		Type:          ast.EachBlockNode,
		Loc:           tok.Loc,
		Expression:    collection,
		RawExpression: each.Collection.Value,
		Item:          item,
		RawItem:       each.Item.Value,
	}

	if each.Index != nil {
		index, d := parseExpression(each.Index.Value, tok.Loc)
		if d != nil {
			return d
		}
		node.Index = index
		node.RawIndex = each.Index.Value
	}
	if each.Key != nil {
		key, d := parseExpression(each.Key.Value, tok.Loc)
		if d != nil {
			return d
		}
		node.Key = key
		node.RawKey = each.Key.Value
	}

	p.addNode(node)
	return nil
}

func (p *Parser) parseEndEach(tok *scanner.Token) *loc.Diagnostic {
	node := p.pop()
	if node == nil || node.Type != ast.EachBlockNode {
		return loc.UnexpectedToken(tok.Loc)
	}

	node.Loc = node.Loc.Merge(tok.Loc)

	if len(p.stack) == 0 {
		p.roots = append(p.roots, node)
	}
	return nil
}

func (p *Parser) parseScript(tok *scanner.Token) *loc.Diagnostic {
	script := tok.Script
	source := script.Source

	if script.TypeScript {
		source = js.StripTypeImports(source)
	}

	program, err := js.ParseProgram(source)
	if err != nil {
		return loc.InvalidExpression(tok.Loc)
	}

	node := &ast.Node{
		Type:       ast.ScriptNode,
		Loc:        tok.Loc,
		Data:       script.Source,
		Program:    program,
		TypeScript: script.TypeScript,
	}

	if !p.addChild(node) {
		p.scripts = append(p.scripts, node)
	}
	return nil
}

func (p *Parser) parseAttributes(attrs []scanner.Attribute) ([]*ast.Attribute, *loc.Diagnostic) {
	var out []*ast.Attribute

	for _, attr := range attrs {
		converted, d := p.parseAttribute(attr)
		if d != nil {
			return nil, d
		}
		out = append(out, converted)
	}
	return out, nil
}

func (p *Parser) parseAttribute(attr scanner.Attribute) (*ast.Attribute, *loc.Diagnostic) {
	switch attr.Type {
	case scanner.QuotedAttribute:
		return &ast.Attribute{
			Kind:   ast.StringAttribute,
			Name:   attr.Key,
			KeyLoc: attr.KeyLoc,
			Value:  attr.Val,
		}, nil
	case scanner.EmptyAttribute:
		return &ast.Attribute{
			Kind:   ast.BooleanAttribute,
			Name:   attr.Key,
			KeyLoc: attr.KeyLoc,
		}, nil
	case scanner.ExpressionAttribute, scanner.ShorthandAttribute:
		expr, d := parseExpression(attr.Val, attr.ValLoc)
		if d != nil {
			return nil, d
		}
		name := attr.Key
		if attr.Type == scanner.ShorthandAttribute {
			name = strings.TrimSpace(attr.Val)
		}
		return &ast.Attribute{
			Kind:          ast.ExpressionAttribute,
			Name:          name,
			KeyLoc:        attr.KeyLoc,
			Shorthand:     attr.Type == scanner.ShorthandAttribute,
			Expression:    expr,
			RawExpression: attr.Val,
			ExprLoc:       attr.ValLoc,
		}, nil
	case scanner.SpreadAttribute:
		expr, d := parseExpression(attr.Val, attr.ValLoc)
		if d != nil {
			return nil, d
		}
		return &ast.Attribute{
			Kind:          ast.SpreadAttribute,
			Expression:    expr,
			RawExpression: attr.Val,
			ExprLoc:       attr.ValLoc,
		}, nil
	case scanner.ConcatenationAttribute:
		parts := make([]ast.ConcatenationPart, 0, len(attr.Parts))
		for _, part := range attr.Parts {
			if !part.IsExpression {
				parts = append(parts, ast.ConcatenationPart{Text: part.Value, Loc: part.Loc})
				continue
			}
			expr, d := parseExpression(part.Value, part.Loc)
			if d != nil {
				return nil, d
			}
			parts = append(parts, ast.ConcatenationPart{Expression: expr, Raw: part.Value, Loc: part.Loc})
		}
		return &ast.Attribute{
			Kind:   ast.ConcatenationAttribute,
			Name:   attr.Key,
			KeyLoc: attr.KeyLoc,
			Parts:  parts,
		}, nil
	case scanner.ClassDirectiveAttribute, scanner.BindDirectiveAttribute:
		expr, d := parseExpression(attr.Val, attr.ValLoc)
		if d != nil {
			return nil, d
		}
		converted := &ast.Attribute{
			Name:          attr.Key,
			KeyLoc:        attr.KeyLoc,
			Shorthand:     attr.Shorthand,
			Expression:    expr,
			RawExpression: attr.Val,
			ExprLoc:       attr.ValLoc,
		}
		if attr.Type == scanner.ClassDirectiveAttribute {
			converted.Kind = ast.ClassDirective
		} else {
			converted.Kind = ast.BindDirective
			converted.BindKind = ast.BindKindFromName(attr.Key)
		}
		return converted, nil
	}
	return nil, loc.InvalidAttributeName(attr.KeyLoc)
}

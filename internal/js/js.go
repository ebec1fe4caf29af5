// Package js wraps the host JavaScript parser and printer behind the small
// surface the compiler needs: parse a program, parse a standalone expression,
// print a tree back to source, and a few structural helpers. The tree type is
// the library's own; the compiler never defines a parallel AST.
package js

import (
	"errors"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

type (
	Expr    = js.IExpr
	Stmt    = js.IStmt
	Binding = js.IBinding
	AST     = js.AST
	Var     = js.Var

	BinaryExpr     = js.BinaryExpr
	UnaryExpr      = js.UnaryExpr
	CallExpr       = js.CallExpr
	LiteralExpr    = js.LiteralExpr
	TemplateExpr   = js.TemplateExpr
	ArrowFunc      = js.ArrowFunc
	FuncDecl       = js.FuncDecl
	VarDecl        = js.VarDecl
	BindingElement = js.BindingElement
	ExprStmt       = js.ExprStmt
	ImportStmt     = js.ImportStmt
	TokenType      = js.TokenType
)

// BindingVar unwraps a plain identifier binding. Destructuring patterns
// return false.
func BindingVar(b js.IBinding) (*js.Var, bool) {
	v, ok := b.(*js.Var)
	return v, ok
}

// SetCallee replaces a call's callee with a named identifier.
func SetCallee(c *js.CallExpr, name string) {
	c.X = Ident(name)
}

// CallArgs returns the call's positional argument expressions.
func CallArgs(c *js.CallExpr) []js.IExpr {
	out := make([]js.IExpr, 0, len(c.Args.List))
	for _, a := range c.Args.List {
		out = append(out, a.Value)
	}
	return out
}

var ErrEmptyExpression = errors.New("empty expression")

// ParseProgram parses a full script body.
func ParseProgram(source string) (*js.AST, error) {
	return js.Parse(parse.NewInputString(source), js.Options{})
}

// ParseExpression parses a standalone expression. The source is wrapped in
// parentheses so statement-ambiguous inputs ({…}, function …) parse in
// expression position; the added group is unwrapped before returning.
func ParseExpression(source string) (js.IExpr, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrEmptyExpression
	}
	ast, err := js.Parse(parse.NewInputString("("+source+"\n)"), js.Options{})
	if err != nil {
		return nil, err
	}
	if len(ast.List) != 1 {
		return nil, errors.New("expected a single expression")
	}
	stmt, ok := ast.List[0].(*js.ExprStmt)
	if !ok {
		return nil, errors.New("expected an expression statement")
	}
	group, ok := stmt.Value.(*js.GroupExpr)
	if !ok {
		return nil, errors.New("expected a parenthesized expression")
	}
	return group.X, nil
}

// Print delegates to the library's JS printer.
func Print(n any) string {
	if p, ok := n.(interface{ JS() string }); ok {
		return p.JS()
	}
	return ""
}

// PrintStmt prints a statement with a terminating semicolon where the
// grammar wants one.
func PrintStmt(s js.IStmt) string {
	out := Print(s)
	switch s.(type) {
	case *js.FuncDecl, *js.ClassDecl, *js.BlockStmt:
		return out
	}
	return out + ";"
}

// RootVar resolves a variable through its link chain to the declaration it
// was merged into; the root pointer is the binding's stable identity.
func RootVar(v *js.Var) *js.Var {
	for v.Link != nil {
		v = v.Link
	}
	return v
}

// VarName resolves a variable's name through its link chain.
func VarName(v *js.Var) string {
	return string(RootVar(v).Data)
}

// IsUndeclared reports whether the reference was left unbound by the parse
// unit it came from. Template expressions are parsed standalone, so their
// free identifiers show up undeclared and are resolved against the
// compiler's own scope tables.
func IsUndeclared(v *js.Var) bool {
	return RootVar(v).Decl == js.NoDecl
}

// CalleeName flattens an identifier or member chain ($state, $state.raw) to
// its dotted name. Returns "" for anything else.
func CalleeName(e js.IExpr) string {
	switch n := e.(type) {
	case *js.Var:
		return VarName(n)
	case *js.GroupExpr:
		return CalleeName(n.X)
	case *js.DotExpr:
		base := CalleeName(n.X)
		if base == "" {
			return ""
		}
		return base + "." + string(n.Y.Data)
	}
	return ""
}

// AsIdentifier returns the variable behind a bare identifier expression.
func AsIdentifier(e js.IExpr) (*js.Var, bool) {
	v, ok := e.(*js.Var)
	return v, ok
}

// IsUndefined matches the `undefined` identifier.
func IsUndefined(e js.IExpr) bool {
	if v, ok := e.(*js.Var); ok {
		return VarName(v) == "undefined"
	}
	return false
}

// IsLiteral matches primitive literals.
func IsLiteral(e js.IExpr) bool {
	_, ok := e.(*js.LiteralExpr)
	return ok
}

// IsProxyWorthy implements the needs-proxy predicate for rune initializers
// and assignment right-hand sides: everything except literals, template
// literals, function and arrow expressions, unary and binary expressions,
// and `undefined` gets wrapped in $.proxy.
func IsProxyWorthy(e js.IExpr) bool {
	switch e.(type) {
	case *js.LiteralExpr, *js.TemplateExpr, *js.ArrowFunc, *js.FuncDecl,
		*js.UnaryExpr, *js.BinaryExpr:
		return false
	}
	if IsUndefined(e) {
		return false
	}
	return true
}

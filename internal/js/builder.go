package js

import (
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2/js"
)

// Synthetic-node constructors. Runtime callees like "$.get" are built as
// plain identifiers, which the printer emits verbatim.

func Ident(name string) *js.Var {
	return &js.Var{Data: []byte(name), Decl: js.NoDecl, Uses: 1}
}

func Call(callee string, args ...js.IExpr) *js.CallExpr {
	return CallOn(Ident(callee), args...)
}

func CallOn(callee js.IExpr, args ...js.IExpr) *js.CallExpr {
	list := make([]js.Arg, 0, len(args))
	for _, arg := range args {
		list = append(list, js.Arg{Value: arg})
	}
	return &js.CallExpr{X: callee, Args: js.Args{List: list}}
}

func String(value string) *js.LiteralExpr {
	return &js.LiteralExpr{TokenType: js.StringToken, Data: []byte(strconv.Quote(value))}
}

func Number(value string) *js.LiteralExpr {
	return &js.LiteralExpr{TokenType: js.DecimalToken, Data: []byte(value)}
}

func Bool(value bool) *js.LiteralExpr {
	if value {
		return &js.LiteralExpr{TokenType: js.TrueToken, Data: []byte("true")}
	}
	return &js.LiteralExpr{TokenType: js.FalseToken, Data: []byte("false")}
}

// Undefined builds the `void 0` placeholder.
func Undefined() js.IExpr {
	return &js.UnaryExpr{Op: js.VoidToken, X: Number("0")}
}

// Pad wraps an expression as `expr ?? ""` for template-literal parts.
func Pad(e js.IExpr) js.IExpr {
	return &js.BinaryExpr{Op: js.NullishToken, X: e, Y: String("")}
}

// A TemplatePart is one piece of a synthesized template literal.
type TemplatePart struct {
	Text string
	Expr js.IExpr
}

func TextPart(text string) TemplatePart {
	return TemplatePart{Text: text}
}

func ExprPart(e js.IExpr) TemplatePart {
	return TemplatePart{Expr: e}
}

func escapeTemplateText(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	text = strings.ReplaceAll(text, "`", "\\`")
	text = strings.ReplaceAll(text, "${", "\\${")
	return text
}

// TemplateLiteral assembles `a${x}b` from alternating parts. Expression
// parts are padded with ?? "" so a nullish piece renders empty.
func TemplateLiteral(parts []TemplatePart) *js.TemplateExpr {
	var list []js.TemplatePart
	chunk := "`"
	for _, part := range parts {
		if part.Expr == nil {
			chunk += escapeTemplateText(part.Text)
			continue
		}
		list = append(list, js.TemplatePart{
			Value: []byte(chunk + "${"),
			Expr:  Pad(part.Expr),
		})
		chunk = "}"
	}
	return &js.TemplateExpr{List: list, Tail: []byte(chunk + "`")}
}

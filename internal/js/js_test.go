package js

import (
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func TestParseExpressionIdentifier(t *testing.T) {
	expr, err := ParseExpression("name")
	assert.NilError(t, err)

	v, ok := AsIdentifier(expr)
	assert.Assert(t, ok)
	assert.Equal(t, VarName(v), "name")
	assert.Assert(t, IsUndeclared(v))
}

func TestParseExpressionObjectLiteral(t *testing.T) {
	// Brace-leading sources must parse in expression position.
	_, err := ParseExpression("{ field: 1 }")
	assert.NilError(t, err)
}

func TestParseExpressionEmpty(t *testing.T) {
	_, err := ParseExpression("   ")
	assert.Assert(t, err != nil)
}

func TestParseExpressionInvalid(t *testing.T) {
	_, err := ParseExpression("a +")
	assert.Assert(t, err != nil)

	_, err = ParseExpression("a; b")
	assert.Assert(t, err != nil)
}

func TestCalleeName(t *testing.T) {
	expr, err := ParseExpression("$state.raw(1)")
	assert.NilError(t, err)

	call, ok := expr.(*CallExpr)
	assert.Assert(t, ok)
	assert.Equal(t, CalleeName(call.X), "$state.raw")

	expr, err = ParseExpression("$state(1)")
	assert.NilError(t, err)
	call = expr.(*CallExpr)
	assert.Equal(t, CalleeName(call.X), "$state")
}

func TestPrintSyntheticCall(t *testing.T) {
	call := Call("$.get", Ident("n"))
	assert.Equal(t, Print(call), "$.get(n)")

	update := Call("$.update_pre", Ident("n"), Number("-1"))
	assert.Equal(t, Print(update), "$.update_pre(n, -1)")
}

func TestPrintUndefinedPlaceholder(t *testing.T) {
	assert.Equal(t, Print(Undefined()), "void 0")
}

func TestTemplateLiteral(t *testing.T) {
	lit := TemplateLiteral([]TemplatePart{
		TextPart("hi "),
		ExprPart(Ident("name")),
	})
	assert.Equal(t, Print(lit), "`hi ${name ?? \"\"}`")
}

func TestTemplateLiteralEscapes(t *testing.T) {
	lit := TemplateLiteral([]TemplatePart{TextPart("a`b${c")})
	out := Print(lit)
	assert.Assert(t, strings.Contains(out, "\\`"), "backtick must escape: %s", out)
	assert.Assert(t, strings.Contains(out, "\\${"), "interpolation must escape: %s", out)
}

func TestIsProxyWorthy(t *testing.T) {
	worthy, err := ParseExpression("[1, 2]")
	assert.NilError(t, err)
	assert.Assert(t, IsProxyWorthy(worthy))

	trivial, err := ParseExpression("1 + 2")
	assert.NilError(t, err)
	assert.Assert(t, !IsProxyWorthy(trivial))

	literal, err := ParseExpression("0")
	assert.NilError(t, err)
	assert.Assert(t, !IsProxyWorthy(literal))

	undef, err := ParseExpression("undefined")
	assert.NilError(t, err)
	assert.Assert(t, !IsProxyWorthy(undef))
}

func TestRewriterReplacesReference(t *testing.T) {
	expr, err := ParseExpression("a + b")
	assert.NilError(t, err)

	rw := &Rewriter{
		Var: func(v *Var) Expr {
			if VarName(v) == "a" {
				return Call("$.get", Ident("a"))
			}
			return nil
		},
	}
	out := rw.Expr(expr)
	assert.Equal(t, Print(out), "$.get(a) + b")
}

func TestRewriterSkipsAssignmentTarget(t *testing.T) {
	expr, err := ParseExpression("a = a + 1")
	assert.NilError(t, err)

	var reads []string
	var writes []string
	rw := &Rewriter{
		Var: func(v *Var) Expr {
			reads = append(reads, VarName(v))
			return nil
		},
		Assign: func(b *BinaryExpr) Expr {
			if v, ok := b.X.(*Var); ok {
				writes = append(writes, VarName(v))
			}
			return nil
		},
	}
	rw.Expr(expr)

	assert.DeepEqual(t, reads, []string{"a"})
	assert.DeepEqual(t, writes, []string{"a"})
}

func TestStripTypeImports(t *testing.T) {
	source := "import type { A } from './a';\nimport { b } from './b';\nlet c = 1;"

	out := StripTypeImports(source)
	assert.Assert(t, !strings.Contains(out, "import type"), "type import must strip: %s", out)
	assert.Assert(t, strings.Contains(out, "import { b }"), "value import must stay: %s", out)
	assert.Assert(t, strings.Contains(out, "let c = 1;"))
}

func TestCompoundAssignBase(t *testing.T) {
	program, err := ParseProgram("a += 1")
	assert.NilError(t, err)

	stmt := program.List[0].(*ExprStmt)
	bin := stmt.Value.(*BinaryExpr)

	assert.Assert(t, IsAssignOp(bin.Op))
	assert.Assert(t, !IsNonCoerciveAssignOp(bin.Op))
	base, ok := CompoundAssignBase(bin.Op)
	assert.Assert(t, ok)
	_ = base
}

package scanner

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/svelte-go/compiler/internal/loc"
)

func scan(t *testing.T, source string) []Token {
	t.Helper()
	tokens, d := New(source).ScanTokens()
	assert.Assert(t, d == nil, "unexpected diagnostic: %v", d)
	return tokens
}

func scanError(t *testing.T, source string) *loc.Diagnostic {
	t.Helper()
	_, d := New(source).ScanTokens()
	assert.Assert(t, d != nil, "expected a diagnostic for %q", source)
	return d
}

func assertStartTag(t *testing.T, tok Token, name string, selfClosing bool, attrs ...string) {
	t.Helper()
	assert.Equal(t, tok.Type, StartTagToken)
	assert.Equal(t, tok.StartTag.Name, name)
	assert.Equal(t, tok.StartTag.SelfClosing, selfClosing)
	assert.Equal(t, len(tok.StartTag.Attributes), len(attrs), "attribute count")
	for i, want := range attrs {
		assert.Equal(t, tok.StartTag.Attributes[i].String(), want)
	}
}

func TestSmoke(t *testing.T) {
	tokens := scan(t, "<div>kek {name} hello</div>")

	assert.Equal(t, tokens[0].Type, StartTagToken)
	assert.Equal(t, tokens[1].Type, TextToken)
	assert.Equal(t, tokens[1].Lexeme, "kek ")
	assert.Equal(t, tokens[2].Type, InterpolationToken)
	assert.Equal(t, tokens[2].Expression.Value, "name")
	assert.Equal(t, tokens[3].Type, TextToken)
	assert.Equal(t, tokens[4].Type, EndTagToken)
	assert.Equal(t, tokens[5].Type, EOFToken)
}

func TestInterpolationWithJsStrings(t *testing.T) {
	tokens := scan(t, "{ name + '}' + \"{}\" + `{\n}` }")

	assert.Equal(t, tokens[0].Type, InterpolationToken)
	assert.Equal(t, tokens[1].Type, EOFToken)
}

func TestInterpolationBraceBalance(t *testing.T) {
	tokens := scan(t, "{ { field: 1} + (function(){return {}}) }")

	assert.Equal(t, tokens[0].Type, InterpolationToken)
	assert.Equal(t, tokens[0].Expression.Value, " { field: 1} + (function(){return {}}) ")
	assert.Equal(t, tokens[1].Type, EOFToken)
}

func TestSingleCharInterpolation(t *testing.T) {
	tokens := scan(t, "{a}")

	assert.Equal(t, tokens[0].Type, InterpolationToken)
	assert.Equal(t, tokens[0].Expression.Value, "a")
}

func TestSelfClosedStartTag(t *testing.T) {
	tokens := scan(t, "<input/>")

	assertStartTag(t, tokens[0], "input", true)
	assert.Equal(t, tokens[1].Type, EOFToken)
}

func TestStartTagAttributes(t *testing.T) {
	tokens := scan(t, `<div valid id=123 touched some=true disabled value="333" class='never' >`)

	assertStartTag(t, tokens[0], "div", false,
		`valid`,
		`id="123"`,
		`touched`,
		`some="true"`,
		`disabled`,
		`value="333"`,
		`class="never"`,
	)
}

func TestExpressionAttributeValues(t *testing.T) {
	tokens := scan(t, `<div value={666} input={} trace={"{another}"}>`)

	tag := tokens[0].StartTag
	assert.Equal(t, tag.Attributes[0].Type, ExpressionAttribute)
	assert.Equal(t, tag.Attributes[0].Val, "666")
	assert.Equal(t, tag.Attributes[1].Val, "")
	assert.Equal(t, tag.Attributes[2].Val, `"{another}"`)
}

func TestConcatenationAttributeValues(t *testing.T) {
	tokens := scan(t, `<input value='prefix_{value}_suffix' id="pre{ middle }post" one="{one}" />`)

	tag := tokens[0].StartTag

	value := tag.Attributes[0]
	assert.Equal(t, value.Type, ConcatenationAttribute)
	assert.Equal(t, len(value.Parts), 3)
	assert.Equal(t, value.Parts[0].Value, "prefix_")
	assert.Equal(t, value.Parts[1].IsExpression, true)
	assert.Equal(t, value.Parts[1].Value, "value")
	assert.Equal(t, value.Parts[2].Value, "_suffix")

	id := tag.Attributes[1]
	assert.Equal(t, id.Type, ConcatenationAttribute)
	assert.Equal(t, id.Parts[1].Value, " middle ")

	one := tag.Attributes[2]
	assert.Equal(t, one.Type, ConcatenationAttribute)
	assert.Equal(t, len(one.Parts), 1)
	assert.Equal(t, one.Parts[0].IsExpression, true)
}

func TestShorthandAndSpreadAttributes(t *testing.T) {
	tokens := scan(t, `<input { name } {...value} />`)

	tag := tokens[0].StartTag
	assert.Equal(t, tag.Attributes[0].Type, ShorthandAttribute)
	assert.Equal(t, tag.Attributes[0].Key, "name")
	assert.Equal(t, tag.Attributes[1].Type, SpreadAttribute)
	assert.Equal(t, tag.Attributes[1].Val, "value")
}

func TestClassDirectives(t *testing.T) {
	tokens := scan(t, `<input class:visible class:toggle={true} />`)

	tag := tokens[0].StartTag
	assert.Equal(t, tag.Attributes[0].Type, ClassDirectiveAttribute)
	assert.Equal(t, tag.Attributes[0].Key, "visible")
	assert.Equal(t, tag.Attributes[0].Shorthand, true)
	assert.Equal(t, tag.Attributes[1].Key, "toggle")
	assert.Equal(t, tag.Attributes[1].Val, "true")
}

func TestBindDirectives(t *testing.T) {
	tokens := scan(t, `<input bind:visible bind:toggle={true} />`)

	tag := tokens[0].StartTag
	assert.Equal(t, tag.Attributes[0].Type, BindDirectiveAttribute)
	assert.Equal(t, tag.Attributes[0].Key, "visible")
	assert.Equal(t, tag.Attributes[1].Val, "true")
}

func TestUnknownDirective(t *testing.T) {
	d := scanError(t, `<input foo:bar />`)
	assert.Equal(t, d.Code, loc.ERROR_UNKNOWN_DIRECTIVE)
}

func TestUnterminatedStartTag(t *testing.T) {
	d := scanError(t, "<div disabled")
	assert.Equal(t, d.Code, loc.ERROR_UNTERMINATED_START_TAG)
}

func TestUnclosedInnerStartTag(t *testing.T) {
	d := scanError(t, "<div><s    </div>")
	assert.Equal(t, d.Code, loc.ERROR_UNTERMINATED_START_TAG)
}

func TestStartIfTag(t *testing.T) {
	tokens := scan(t, "{#if test }")

	assert.Equal(t, tokens[0].Type, StartIfToken)
	assert.Equal(t, tokens[0].Expression.Value, " test ")
}

func TestEndIfTag(t *testing.T) {
	tokens := scan(t, "{/if}")
	assert.Equal(t, tokens[0].Type, EndIfToken)
}

func TestElseTags(t *testing.T) {
	tokens := scan(t, "{:else }{:else if test }")

	assert.Equal(t, tokens[0].Type, ElseToken)
	assert.Equal(t, tokens[0].Else.ElseIf, false)
	assert.Equal(t, tokens[1].Type, ElseToken)
	assert.Equal(t, tokens[1].Else.ElseIf, true)
	assert.Equal(t, tokens[1].Else.Expression.Value, " test ")
}

func TestEachTags(t *testing.T) {
	tokens := scan(t, "{#each items as item, i (item.id)}{/each}")

	each := tokens[0].Each
	assert.Equal(t, tokens[0].Type, StartEachToken)
	assert.Equal(t, each.Collection.Value, "items")
	assert.Equal(t, each.Item.Value, "item")
	assert.Equal(t, each.Index.Value, "i")
	assert.Equal(t, each.Key.Value, "item.id")
	assert.Equal(t, tokens[1].Type, EndEachToken)
}

func TestEachWithoutIndexOrKey(t *testing.T) {
	tokens := scan(t, "{#each xs as x}{/each}")

	each := tokens[0].Each
	assert.Equal(t, each.Collection.Value, "xs")
	assert.Equal(t, each.Item.Value, "x")
	assert.Assert(t, each.Index == nil)
	assert.Assert(t, each.Key == nil)
}

func TestEachDestructuredItem(t *testing.T) {
	tokens := scan(t, "{#each xs as {a, b}}{/each}")

	each := tokens[0].Each
	assert.Equal(t, each.Item.Value, "{a, b}")
	assert.Assert(t, each.Index == nil)
}

func TestEachWithoutAs(t *testing.T) {
	d := scanError(t, "{#each items}")
	assert.Equal(t, d.Code, loc.ERROR_UNEXPECTED_TOKEN)
}

func TestUnexpectedBlockKeyword(t *testing.T) {
	d := scanError(t, "{#for x}")
	assert.Equal(t, d.Code, loc.ERROR_UNEXPECTED_KEYWORD)
}

func TestScriptTag(t *testing.T) {
	tokens := scan(t, `<script lang="ts">const i = 12;</script>`)

	script := tokens[0].Script
	assert.Equal(t, tokens[0].Type, ScriptToken)
	assert.Equal(t, script.Source, "const i = 12;")
	assert.Equal(t, script.TypeScript, true)
	assert.Equal(t, tokens[1].Type, EOFToken)
}

func TestComment(t *testing.T) {
	tokens := scan(t, "<!-- \nsome comment\n -->")

	assert.Equal(t, tokens[0].Type, CommentToken)
	assert.Equal(t, tokens[0].Lexeme, "<!-- \nsome comment\n -->")
	assert.Equal(t, tokens[1].Type, EOFToken)
}

func TestUnterminatedComment(t *testing.T) {
	d := scanError(t, "<!-- never closed")
	assert.Equal(t, d.Code, loc.ERROR_UNEXPECTED_END_OF_FILE)
}

func TestUnterminatedInterpolation(t *testing.T) {
	d := scanError(t, "{ name ")
	assert.Equal(t, d.Code, loc.ERROR_UNEXPECTED_END_OF_FILE)
}

func TestBalancedInterpolationSpan(t *testing.T) {
	source := "{ a + { b: '}' } }"
	tokens := scan(t, source)

	assert.Equal(t, tokens[0].Type, InterpolationToken)
	assert.Equal(t, tokens[0].Loc.Start, 0)
	assert.Equal(t, tokens[0].Loc.End, len(source))
	assert.Equal(t, tokens[1].Type, EOFToken)
}

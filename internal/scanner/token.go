package scanner

import (
	"strconv"
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/svelte-go/compiler/internal/loc"
)

// A TokenType is the type of a Token.
type TokenType uint32

const (
	// ErrorToken means that an error occurred during tokenization.
	ErrorToken TokenType = iota
	// TextToken means a text node.
	TextToken
	// A CommentToken looks like <!--x-->.
	CommentToken
	// A StartTagToken looks like <a> or <a/>.
	StartTagToken
	// An EndTagToken looks like </a>.
	EndTagToken
	// An InterpolationToken looks like {expr}.
	InterpolationToken
	// A StartIfToken looks like {#if expr}.
	StartIfToken
	// An ElseToken looks like {:else} or {:else if expr}.
	ElseToken
	// An EndIfToken looks like {/if}.
	EndIfToken
	// A StartEachToken looks like {#each expr as item, index (key)}.
	StartEachToken
	// An EndEachToken looks like {/each}.
	EndEachToken
	// A ScriptToken is a whole <script>…</script> element with a raw body.
	ScriptToken
	// An EOFToken terminates every token stream.
	EOFToken
)

// String returns a string representation of the TokenType.
func (t TokenType) String() string {
	switch t {
	case ErrorToken:
		return "Error"
	case TextToken:
		return "Text"
	case CommentToken:
		return "Comment"
	case StartTagToken:
		return "StartTag"
	case EndTagToken:
		return "EndTag"
	case InterpolationToken:
		return "Interpolation"
	case StartIfToken:
		return "StartIf"
	case ElseToken:
		return "Else"
	case EndIfToken:
		return "EndIf"
	case StartEachToken:
		return "StartEach"
	case EndEachToken:
		return "EndEach"
	case ScriptToken:
		return "Script"
	case EOFToken:
		return "EOF"
	}
	return "Invalid(" + strconv.Itoa(int(t)) + ")"
}

// AttributeType is the type of an Attribute.
type AttributeType uint32

const (
	// QuotedAttribute is name="value", name='value' or an unquoted name=value.
	QuotedAttribute AttributeType = iota
	// EmptyAttribute is a bare attribute name.
	EmptyAttribute
	// ExpressionAttribute is name={expr}.
	ExpressionAttribute
	// SpreadAttribute is {...expr}.
	SpreadAttribute
	// ShorthandAttribute is {name}.
	ShorthandAttribute
	// ConcatenationAttribute is a quoted value with embedded {expr} parts.
	ConcatenationAttribute
	// ClassDirectiveAttribute is class:name[={expr}].
	ClassDirectiveAttribute
	// BindDirectiveAttribute is bind:name[={expr}].
	BindDirectiveAttribute
)

func (t AttributeType) String() string {
	switch t {
	case QuotedAttribute:
		return "quoted"
	case EmptyAttribute:
		return "empty"
	case ExpressionAttribute:
		return "expression"
	case SpreadAttribute:
		return "spread"
	case ShorthandAttribute:
		return "shorthand"
	case ConcatenationAttribute:
		return "concatenation"
	case ClassDirectiveAttribute:
		return "class-directive"
	case BindDirectiveAttribute:
		return "bind-directive"
	}
	return "Invalid(" + strconv.Itoa(int(t)) + ")"
}

// A JsExpression is an unparsed embedded-expression slice of the source.
type JsExpression struct {
	Value string
	Loc   loc.Span
}

// A ConcatenationPart is one piece of a quoted attribute value with
// embedded expressions.
type ConcatenationPart struct {
	IsExpression bool
	Value        string
	Loc          loc.Span
}

// An Attribute is one attribute as scanned inside a start tag. Key holds the
// attribute name or the directive target; Val holds the string value or the
// raw expression source, depending on Type.
type Attribute struct {
	Type      AttributeType
	Key       string
	KeyLoc    loc.Span
	Val       string
	ValLoc    loc.Span
	Parts     []ConcatenationPart
	Shorthand bool
}

type StartTag struct {
	Name        string
	DataAtom    atom.Atom
	Attributes  []Attribute
	SelfClosing bool
}

type EndTag struct {
	Name string
}

type Else struct {
	ElseIf     bool
	Expression *JsExpression
}

type StartEach struct {
	Collection JsExpression
	Item       JsExpression
	Index      *JsExpression
	Key        *JsExpression
}

type Script struct {
	Source     string
	SourceLoc  loc.Span
	Attributes []Attribute
	TypeScript bool
}

// A Token consists of a TokenType, the span and raw lexeme it covers, and a
// payload for the token kinds that carry one.
type Token struct {
	Type   TokenType
	Loc    loc.Span
	Lexeme string

	StartTag   *StartTag
	EndTag     *EndTag
	Expression *JsExpression
	Else       *Else
	Each       *StartEach
	Script     *Script
}

func (a Attribute) String() string {
	switch a.Type {
	case QuotedAttribute:
		return a.Key + `="` + a.Val + `"`
	case EmptyAttribute:
		return a.Key
	case ExpressionAttribute:
		return a.Key + "={" + a.Val + "}"
	case SpreadAttribute:
		return "{..." + a.Val + "}"
	case ShorthandAttribute:
		return "{" + a.Val + "}"
	case ConcatenationAttribute:
		var b strings.Builder
		b.WriteString(a.Key)
		b.WriteString(`="`)
		for _, part := range a.Parts {
			if part.IsExpression {
				b.WriteString("{" + part.Value + "}")
			} else {
				b.WriteString(part.Value)
			}
		}
		b.WriteString(`"`)
		return b.String()
	case ClassDirectiveAttribute:
		if a.Shorthand {
			return "class:" + a.Key
		}
		return "class:" + a.Key + "={" + a.Val + "}"
	case BindDirectiveAttribute:
		if a.Shorthand {
			return "bind:" + a.Key
		}
		return "bind:" + a.Key + "={" + a.Val + "}"
	}
	return a.Key
}

// String returns a source-shaped representation of the Token.
func (t Token) String() string {
	switch t.Type {
	case TextToken, CommentToken:
		return t.Lexeme
	case StartTagToken:
		var b strings.Builder
		b.WriteByte('<')
		b.WriteString(t.StartTag.Name)
		for _, a := range t.StartTag.Attributes {
			b.WriteByte(' ')
			b.WriteString(a.String())
		}
		if t.StartTag.SelfClosing {
			b.WriteString("/>")
		} else {
			b.WriteByte('>')
		}
		return b.String()
	case EndTagToken:
		return "</" + t.EndTag.Name + ">"
	case InterpolationToken:
		return "{" + t.Expression.Value + "}"
	case StartIfToken:
		return "{#if " + t.Expression.Value + "}"
	case ElseToken:
		if t.Else.ElseIf {
			return "{:else if " + t.Else.Expression.Value + "}"
		}
		return "{:else}"
	case EndIfToken:
		return "{/if}"
	case StartEachToken:
		return "{#each " + t.Each.Collection.Value + " as " + t.Each.Item.Value + "}"
	case EndEachToken:
		return "{/each}"
	case ScriptToken:
		return "<script>" + t.Script.Source + "</script>"
	case EOFToken:
		return ""
	}
	return "Invalid(" + strconv.Itoa(int(t.Type)) + ")"
}

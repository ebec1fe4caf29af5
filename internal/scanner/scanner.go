package scanner

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html/atom"

	"github.com/svelte-go/compiler/internal/loc"
)

// A Scanner turns one source buffer into a token stream ending with EOF.
// It tracks three byte offsets: the start of the current token, the offset
// of the previously read rune, and the read head.
type Scanner struct {
	source  string
	tokens  []Token
	start   int
	prev    int
	current int
}

func New(source string) *Scanner {
	return &Scanner{source: source}
}

// ScanTokens scans the whole source. The first failure terminates scanning.
func (s *Scanner) ScanTokens() ([]Token, *loc.Diagnostic) {
	for !s.isAtEnd() {
		s.start = s.current
		if d := s.scanToken(); d != nil {
			return nil, d
		}
	}
	s.tokens = append(s.tokens, Token{
		Type: EOFToken,
		Loc:  loc.NewSpan(s.current, s.current),
	})
	return s.tokens, nil
}

func (s *Scanner) scanToken() *loc.Diagnostic {
	ch := s.advance()

	if ch == '<' {
		switch p, _ := s.peek(); p {
		case '/':
			return s.endTag()
		case '!':
			return s.comment()
		default:
			return s.startTag()
		}
	}

	if ch == '{' {
		switch p, _ := s.peek(); p {
		case '#':
			return s.startTemplate()
		case ':':
			return s.middleTemplate()
		case '/':
			return s.endTemplate()
		default:
			return s.interpolation()
		}
	}

	s.text()
	return nil
}

func (s *Scanner) addToken(tok Token) {
	tok.Loc = loc.NewSpan(s.start, s.current)
	tok.Lexeme = s.slice(s.start, s.current)
	s.tokens = append(s.tokens, tok)
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) advance() rune {
	r, size := utf8.DecodeRuneInString(s.source[s.current:])
	s.prev = s.current
	s.current += size
	return r
}

func (s *Scanner) peek() (rune, bool) {
	if s.isAtEnd() {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s.source[s.current:])
	return r, true
}

func (s *Scanner) matchChar(expected rune) bool {
	if p, ok := s.peek(); !ok || p != expected {
		return false
	}
	s.advance()
	return true
}

func (s *Scanner) slice(start, end int) string {
	return s.source[start:end]
}

func (s *Scanner) span(start int) loc.Span {
	return loc.NewSpan(start, s.current)
}

func (s *Scanner) skipWhitespace() {
	for {
		p, ok := s.peek()
		if !ok || !unicode.IsSpace(p) {
			return
		}
		s.advance()
	}
}

func (s *Scanner) identifier() string {
	start := s.current
	for {
		p, ok := s.peek()
		if !ok || !(unicode.IsLetter(p) || unicode.IsDigit(p) || p == '-') {
			break
		}
		s.advance()
	}
	return s.slice(start, s.current)
}

func (s *Scanner) collectUntil(stop func(rune) bool) (string, loc.Span, *loc.Diagnostic) {
	start := s.current
	for !s.isAtEnd() {
		if p, _ := s.peek(); stop(p) {
			break
		}
		s.advance()
	}
	if s.isAtEnd() {
		return "", loc.Span{}, loc.UnexpectedEndOfFile(s.span(start))
	}
	return s.slice(start, s.current), s.span(start), nil
}

// Tokens:

func (s *Scanner) text() {
	for {
		p, ok := s.peek()
		if !ok || p == '<' || p == '{' {
			break
		}
		s.advance()
	}
	s.addToken(Token{Type: TextToken})
}

func (s *Scanner) startTag() *loc.Diagnostic {
	start := s.current
	name := s.identifier()
	if name == "" {
		return loc.InvalidTagName(s.span(start))
	}

	attributes, d := s.attributes()
	if d != nil {
		return d
	}
	selfClosing := s.matchChar('/')

	if !s.matchChar('>') {
		return loc.UnterminatedStartTag(s.span(start))
	}

	if name == "script" {
		return s.scriptTag(attributes)
	}

	s.addToken(Token{Type: StartTagToken, StartTag: &StartTag{
		Name:        name,
		DataAtom:    atom.Lookup([]byte(name)),
		Attributes:  attributes,
		SelfClosing: selfClosing,
	}})
	return nil
}

func (s *Scanner) endTag() *loc.Diagnostic {
	s.advance() // '/'

	start := s.current
	name := s.identifier()
	if name == "" {
		return loc.InvalidTagName(s.span(start))
	}

	s.skipWhitespace()
	if !s.matchChar('>') {
		return loc.UnexpectedToken(s.span(start))
	}

	s.addToken(Token{Type: EndTagToken, EndTag: &EndTag{Name: name}})
	return nil
}

func (s *Scanner) attributes() ([]Attribute, *loc.Diagnostic) {
	var attributes []Attribute

	for {
		p, ok := s.peek()
		if !ok || p == '/' || p == '>' {
			break
		}

		s.skipWhitespace()

		p, ok = s.peek()
		if !ok {
			break
		}

		var attr Attribute
		if p == '{' {
			expr, d := s.expressionTag()
			if d != nil {
				return nil, d
			}
			trimmed := strings.TrimSpace(expr.Value)
			if rest, isSpread := strings.CutPrefix(trimmed, "..."); isSpread {
				attr = Attribute{Type: SpreadAttribute, Val: rest, ValLoc: expr.Loc}
			} else {
				attr = Attribute{Type: ShorthandAttribute, Key: trimmed, Val: trimmed, ValLoc: expr.Loc, Shorthand: true}
			}
		} else {
			kind, name, keyLoc, d := s.attributeIdentifier()
			if d != nil {
				return nil, d
			}
			if kind == attrIdentNone {
				break
			}

			var dd *loc.Diagnostic
			switch kind {
			case attrIdentHTML:
				attr, dd = s.htmlAttribute(name, keyLoc)
			case attrIdentClass:
				attr, dd = s.directive(ClassDirectiveAttribute, name, keyLoc)
			case attrIdentBind:
				attr, dd = s.directive(BindDirectiveAttribute, name, keyLoc)
			}
			if dd != nil {
				return nil, dd
			}
		}

		attributes = append(attributes, attr)
		s.skipWhitespace()
	}

	return attributes, nil
}

type attrIdentKind int

const (
	attrIdentNone attrIdentKind = iota
	attrIdentHTML
	attrIdentClass
	attrIdentBind
)

func (s *Scanner) attributeIdentifier() (attrIdentKind, string, loc.Span, *loc.Diagnostic) {
	start := s.current
	isDirective := false
	colonPos := 0

	for {
		p, ok := s.peek()
		if !ok {
			break
		}
		if p == ':' {
			isDirective = true
			colonPos = s.current
		}
		if unicode.IsLetter(p) || unicode.IsDigit(p) || p == '-' || p == ':' {
			s.advance()
		} else {
			break
		}
	}

	if isDirective {
		name := s.slice(start, colonPos)
		value := s.slice(colonPos+1, s.current)
		valueLoc := loc.NewSpan(colonPos+1, s.current)

		switch name {
		case "class":
			return attrIdentClass, value, valueLoc, nil
		case "bind":
			return attrIdentBind, value, valueLoc, nil
		}
		return attrIdentNone, "", loc.Span{}, loc.UnknownDirective(loc.NewSpan(colonPos, s.current))
	}

	if start == s.current {
		return attrIdentNone, "", loc.Span{}, nil
	}
	return attrIdentHTML, s.slice(start, s.current), s.span(start), nil
}

func (s *Scanner) htmlAttribute(name string, keyLoc loc.Span) (Attribute, *loc.Diagnostic) {
	if !s.matchChar('=') {
		return Attribute{Type: EmptyAttribute, Key: name, KeyLoc: keyLoc}, nil
	}

	attr, d := s.attributeValue()
	if d != nil {
		return Attribute{}, d
	}
	attr.Key = name
	attr.KeyLoc = keyLoc
	return attr, nil
}

func (s *Scanner) directive(typ AttributeType, name string, keyLoc loc.Span) (Attribute, *loc.Diagnostic) {
	if !s.matchChar('=') {
		return Attribute{
			Type:      typ,
			Key:       name,
			KeyLoc:    keyLoc,
			Val:       name,
			ValLoc:    keyLoc,
			Shorthand: true,
		}, nil
	}

	if p, ok := s.peek(); !ok || p != '{' {
		return Attribute{}, loc.UnexpectedToken(s.span(s.current))
	}
	expr, d := s.expressionTag()
	if d != nil {
		return Attribute{}, d
	}
	return Attribute{Type: typ, Key: name, KeyLoc: keyLoc, Val: expr.Value, ValLoc: expr.Loc}, nil
}

func (s *Scanner) attributeValue() (Attribute, *loc.Diagnostic) {
	p, ok := s.peek()
	if !ok {
		return Attribute{}, loc.UnexpectedEndOfFile(s.span(s.current))
	}

	if p == '{' {
		expr, d := s.expressionTag()
		if d != nil {
			return Attribute{}, d
		}
		return Attribute{Type: ExpressionAttribute, Val: expr.Value, ValLoc: expr.Loc}, nil
	}

	if p == '"' || p == '\'' {
		return s.concatenationOrString(p)
	}

	// An unquoted value runs until whitespace or a character that cannot
	// appear in it.
	val, valLoc, d := s.collectUntil(func(r rune) bool {
		switch r {
		case '"', '\'', '>', '<', '`':
			return true
		}
		return unicode.IsSpace(r)
	})
	if d != nil {
		return Attribute{}, d
	}
	return Attribute{Type: QuotedAttribute, Val: val, ValLoc: valLoc}, nil
}

func (s *Scanner) concatenationOrString(quote rune) (Attribute, *loc.Diagnostic) {
	hasExpression := false
	start := s.current
	var parts []ConcatenationPart

	s.advance() // opening quote
	currentPos := s.current

	for {
		p, ok := s.peek()
		if !ok || p == quote {
			break
		}

		if p == '{' {
			hasExpression = true
			if part := s.slice(currentPos, s.current); part != "" {
				parts = append(parts, ConcatenationPart{Value: part, Loc: loc.NewSpan(currentPos, s.current)})
			}

			expr, d := s.expressionTag()
			if d != nil {
				return Attribute{}, d
			}
			parts = append(parts, ConcatenationPart{IsExpression: true, Value: expr.Value, Loc: expr.Loc})
			currentPos = s.current
			continue
		}

		s.advance()
	}

	if s.isAtEnd() {
		return Attribute{}, loc.UnexpectedEndOfFile(s.span(start))
	}

	lastPart := s.slice(currentPos, s.current)
	lastLoc := loc.NewSpan(currentPos, s.current)
	s.advance() // closing quote

	if hasExpression && lastPart != "" {
		parts = append(parts, ConcatenationPart{Value: lastPart, Loc: lastLoc})
	}

	if !hasExpression {
		return Attribute{Type: QuotedAttribute, Val: lastPart, ValLoc: lastLoc}, nil
	}

	return Attribute{Type: ConcatenationAttribute, Parts: parts, ValLoc: s.span(start)}, nil
}

// expressionTag consumes a brace-delimited embedded expression. The read
// head must be on the opening brace.
func (s *Scanner) expressionTag() (JsExpression, *loc.Diagnostic) {
	s.advance() // '{'
	return s.collectJSExpression()
}

// collectJSExpression scans a balanced embedded expression up to the brace
// closing it. Quoted strings, including backtick strings, are skipped
// without interpolation handling. The opening brace is already consumed.
func (s *Scanner) collectJSExpression() (JsExpression, *loc.Diagnostic) {
	stack := 0
	start := s.current

	for !s.isAtEnd() {
		ch := s.advance()

		switch ch {
		case '\'', '"', '`':
			if d := s.skipJSString(ch); d != nil {
				return JsExpression{}, d
			}
		case '{':
			stack++
		case '}':
			if stack == 0 {
				return JsExpression{
					Value: s.slice(start, s.prev),
					Loc:   loc.NewSpan(start, s.prev),
				}, nil
			}
			stack--
		}
	}

	return JsExpression{}, loc.UnexpectedEndOfFile(s.span(start))
}

func (s *Scanner) skipJSString(quote rune) *loc.Diagnostic {
	start := s.current
	for {
		p, ok := s.peek()
		if !ok {
			return loc.UnexpectedEndOfFile(s.span(start))
		}
		s.advance()
		if p == quote {
			return nil
		}
	}
}

func (s *Scanner) interpolation() *loc.Diagnostic {
	expr, d := s.collectJSExpression()
	if d != nil {
		return d
	}
	s.addToken(Token{Type: InterpolationToken, Expression: &expr})
	return nil
}

func (s *Scanner) startTemplate() *loc.Diagnostic {
	s.advance() // '#'

	start := s.current
	keyword := s.identifier()
	if keyword == "" {
		return loc.UnexpectedKeyword(loc.NewSpan(s.start, s.current))
	}

	switch keyword {
	case "if":
		expr, d := s.collectJSExpression()
		if d != nil {
			return d
		}
		s.addToken(Token{Type: StartIfToken, Expression: &expr})
		return nil
	case "each":
		return s.startEach()
	}
	return loc.UnexpectedKeyword(s.span(start))
}

func (s *Scanner) middleTemplate() *loc.Diagnostic {
	s.advance() // ':'

	start := s.current
	keyword := s.identifier()
	if keyword == "" || keyword != "else" {
		return loc.UnexpectedKeyword(s.span(start))
	}

	s.skipWhitespace()

	start = s.current
	elseif := s.identifier()

	if elseif != "" {
		if elseif != "if" {
			return loc.UnexpectedKeyword(s.span(start))
		}
		expr, d := s.collectJSExpression()
		if d != nil {
			return d
		}
		s.addToken(Token{Type: ElseToken, Else: &Else{ElseIf: true, Expression: &expr}})
		return nil
	}

	if !s.matchChar('}') {
		return loc.UnexpectedToken(s.span(start))
	}
	s.addToken(Token{Type: ElseToken, Else: &Else{}})
	return nil
}

func (s *Scanner) endTemplate() *loc.Diagnostic {
	s.advance() // '/'

	start := s.current
	keyword := s.identifier()
	if keyword == "" {
		return loc.UnexpectedKeyword(loc.NewSpan(s.start, s.current))
	}

	var typ TokenType
	switch keyword {
	case "if":
		typ = EndIfToken
	case "each":
		typ = EndEachToken
	default:
		return loc.UnexpectedKeyword(s.span(start))
	}

	s.skipWhitespace()
	if !s.matchChar('}') {
		return loc.UnexpectedToken(s.span(start))
	}
	s.addToken(Token{Type: typ})
	return nil
}

func (s *Scanner) startEach() *loc.Diagnostic {
	raw, d := s.collectJSExpression()
	if d != nil {
		return d
	}

	each, d := splitEach(raw)
	if d != nil {
		return d
	}

	s.addToken(Token{Type: StartEachToken, Each: each})
	return nil
}

// splitEach breaks the raw body of {#each …} into collection, item binding,
// optional index, and optional parenthesized key, splitting only at top
// level with respect to brackets and strings.
func splitEach(raw JsExpression) (*StartEach, *loc.Diagnostic) {
	src := raw.Value
	base := raw.Loc.Start

	asIdx := topLevelIndex(src, " as ")
	if asIdx < 0 {
		return nil, loc.UnexpectedToken(raw.Loc)
	}

	collection := trimPiece(src, 0, asIdx, base)
	restStart := asIdx + len(" as ")
	rest := src[restStart:]

	var key *JsExpression
	if open, close := trailingGroup(rest); open >= 0 {
		k := trimPiece(rest, open+1, close, base+restStart)
		key = &k
		rest = rest[:open]
	}

	var index *JsExpression
	item := rest
	if comma := topLevelIndex(rest, ","); comma >= 0 {
		idx := trimPiece(rest, comma+1, len(rest), base+restStart)
		if idx.Value == "" {
			return nil, loc.UnexpectedToken(raw.Loc)
		}
		index = &idx
		item = rest[:comma]
	}

	itemExpr := trimPiece(item, 0, len(item), base+restStart)
	if collection.Value == "" || itemExpr.Value == "" {
		return nil, loc.UnexpectedToken(raw.Loc)
	}

	return &StartEach{
		Collection: collection,
		Item:       itemExpr,
		Index:      index,
		Key:        key,
	}, nil
}

func trimPiece(src string, start, end, base int) JsExpression {
	for start < end && isSpaceByte(src[start]) {
		start++
	}
	for end > start && isSpaceByte(src[end-1]) {
		end--
	}
	return JsExpression{
		Value: src[start:end],
		Loc:   loc.NewSpan(base+start, base+end),
	}
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// topLevelIndex finds the first occurrence of sub outside brackets and
// strings, or -1.
func topLevelIndex(src, sub string) int {
	depth := 0
	var quote byte
	for i := 0; i < len(src); i++ {
		c := src[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		default:
			if depth == 0 && strings.HasPrefix(src[i:], sub) {
				return i
			}
		}
	}
	return -1
}

// trailingGroup finds a top-level parenthesized group that closes the
// string (ignoring trailing whitespace); returns its bracket offsets or
// (-1, -1).
func trailingGroup(src string) (int, int) {
	depth := 0
	var quote byte
	open, lastOpen, lastClose := -1, -1, -1
	for i := 0; i < len(src); i++ {
		c := src[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '(':
			if depth == 0 {
				open = i
			}
			depth++
		case '[', '{':
			depth++
		case ')':
			depth--
			if depth == 0 && open >= 0 {
				lastOpen, lastClose = open, i
				open = -1
			}
		case ']', '}':
			depth--
		}
	}
	if lastClose < 0 || lastOpen <= 0 {
		return -1, -1
	}
	if strings.TrimSpace(src[lastClose+1:]) != "" {
		return -1, -1
	}
	return lastOpen, lastClose
}

func (s *Scanner) scriptTag(attributes []Attribute) *loc.Diagnostic {
	start := s.current
	end := start

	for !s.isAtEnd() {
		ch := s.advance()
		if ch != '<' {
			continue
		}
		end = s.prev
		if !s.matchChar('/') {
			continue
		}
		if s.identifier() == "script" {
			break
		}
	}

	if s.isAtEnd() {
		return loc.UnexpectedEndOfFile(s.span(start))
	}

	s.skipWhitespace()
	if !s.matchChar('>') {
		return loc.UnexpectedToken(s.span(start))
	}

	typescript := false
	for _, attr := range attributes {
		if attr.Type == QuotedAttribute && attr.Key == "lang" && attr.Val == "ts" {
			typescript = true
		}
	}

	s.addToken(Token{Type: ScriptToken, Script: &Script{
		Source:     s.slice(start, end),
		SourceLoc:  loc.NewSpan(start, end),
		Attributes: attributes,
		TypeScript: typescript,
	}})
	return nil
}

func (s *Scanner) comment() *loc.Diagnostic {
	start := s.current
	s.advance() // '!'

	if !s.matchChar('-') || !s.matchChar('-') {
		return loc.UnexpectedToken(s.span(start))
	}

	for !s.isAtEnd() {
		if strings.HasPrefix(s.source[s.current:], "-->") {
			s.advance()
			s.advance()
			s.advance()
			s.addToken(Token{Type: CommentToken})
			return nil
		}
		s.advance()
	}

	return loc.UnexpectedEndOfFile(s.span(start))
}

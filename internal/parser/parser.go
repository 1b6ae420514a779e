// Package parser turns color expression source text into an expression tree.
//
// The grammar, from loosest to tightest binding:
//
//	mix      = unary { ws? "*" number "*" ws? unary }
//	unary    = "~" ws? unary | postfix
//	postfix  = atom { ws ("ch" | "st" | "li=" | "li") ws? number | ws? "a" ws? number }
//	atom     = name "(" mix { "," mix } ")" | lch | name | "$" name | "(" mix ")"
//	lch      = [lL] number [cC] number [hH] number
//	number   = [+-]? [0-9.]+
//	name     = [A-Za-z0-9_-]+
//
// Parsing is scannerless; literals are tried before names, so L50C20H30 is a
// literal while "lime" is a name.
package parser

import (
	"fmt"
	"strconv"
)

type parser struct {
	src  string
	pos  int
	line int
}

// ParseExpr parses a complete color expression. Leading and trailing
// whitespace is ignored; any other trailing input is a syntax error.
func ParseExpr(src string) (Expr, error) {
	p := &parser{src: src}
	return p.parseAll()
}

// parseAll parses an expression starting at p.pos that must extend to the
// end of the input.
func (p *parser) parseAll() (Expr, error) {
	p.skipSpace()
	if p.eof() {
		return nil, p.errorf(ErrSyntax, "empty expression")
	}
	e, err := p.parseMix()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf(ErrSyntax, "unexpected %q", p.src[p.pos:])
	}
	return e, nil
}

func (p *parser) parseMix() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		save := p.pos
		p.skipSpace()
		if !p.accept('*') {
			p.pos = save
			return left, nil
		}
		pct, err := p.number()
		if err != nil {
			return nil, err
		}
		if !p.accept('*') {
			return nil, p.errorf(ErrSyntax, "expected '*' after mix factor")
		}
		p.skipSpace()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Mix{
			Span:    Span{left.Range().Start, right.Range().End},
			A:       left,
			B:       right,
			Percent: pct,
		}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	if !p.peek('~') {
		return p.parsePostfix()
	}
	start := p.pos
	p.pos++
	p.skipSpace()
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &Complement{Span: Span{start, x.Range().End}, X: x}, nil
}

// modifier keywords, longest first so "li=" wins over "li".
var modifiers = []struct {
	kw        string
	needSpace bool
	build     func(x Expr, v float64, s Span) Expr
}{
	{"li=", true, func(x Expr, v float64, s Span) Expr { return &WithLightness{Span: s, X: x, Value: v} }},
	{"li", true, func(x Expr, v float64, s Span) Expr { return &Shade{Span: s, X: x, Percent: v} }},
	{"ch", true, func(x Expr, v float64, s Span) Expr { return &WithChroma{Span: s, X: x, Value: v} }},
	{"st", true, func(x Expr, v float64, s Span) Expr { return &Saturate{Span: s, X: x, Percent: v} }},
	{"a", false, func(x Expr, v float64, s Span) Expr { return &WithAlpha{Span: s, X: x, Percent: v} }},
}

func (p *parser) parsePostfix() (Expr, error) {
	x, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		save := p.pos
		spaced := p.skipSpace()
		next, ok, err := p.modifier(x, spaced)
		if err != nil {
			return nil, err
		}
		if !ok {
			p.pos = save
			return x, nil
		}
		x = next
	}
}

// modifier tries to apply one postfix modifier to x. A keyword only counts
// when a number follows it; otherwise nothing is consumed.
func (p *parser) modifier(x Expr, spaced bool) (Expr, bool, error) {
	for _, m := range modifiers {
		if m.needSpace && !spaced {
			continue
		}
		if !p.hasPrefix(m.kw) {
			continue
		}
		save := p.pos
		p.pos += len(m.kw)
		p.skipSpace()
		if !p.atNumber() {
			p.pos = save
			continue
		}
		v, err := p.number()
		if err != nil {
			return nil, false, err
		}
		return m.build(x, v, Span{x.Range().Start, p.pos}), true, nil
	}
	return nil, false, nil
}

func (p *parser) parseAtom() (Expr, error) {
	if p.eof() {
		return nil, p.errorf(ErrSyntax, "unexpected end of expression")
	}
	start := p.pos
	switch c := p.src[p.pos]; {
	case c == '(':
		p.pos++
		p.skipSpace()
		x, err := p.parseMix()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if !p.accept(')') {
			return nil, p.errorf(ErrSyntax, "expected ')' to close '(' at column %d", start+1)
		}
		return x, nil
	case c == '$':
		p.pos++
		name := p.name()
		if name == "" {
			return nil, p.errorf(ErrSyntax, "expected color name after '$'")
		}
		return &Named{Span: Span{start, p.pos}, Name: name}, nil
	case isNameChar(c):
		if lit, ok := p.literal(); ok {
			return lit, nil
		}
		name := p.name()
		nameSpan := Span{start, p.pos}
		if p.peek('(') {
			return p.parseCall(name, nameSpan)
		}
		return &Ident{Span: nameSpan, Name: name}, nil
	default:
		return nil, p.errorf(ErrSyntax, "expected color expression, found %q", string(c))
	}
}

func (p *parser) parseCall(name string, nameSpan Span) (Expr, error) {
	p.pos++ // '('
	call := &Call{Name: name, NameSpan: nameSpan}
	for {
		p.skipSpace()
		arg, err := p.parseMix()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
		p.skipSpace()
		if p.accept(',') {
			continue
		}
		if p.accept(')') {
			break
		}
		return nil, p.errorf(ErrSyntax, "expected ',' or ')' in call to %s", name)
	}
	call.Span = Span{nameSpan.Start, p.pos}
	return call, nil
}

// literal parses an LCh literal. On any mismatch it restores the position
// and reports false so the input can be read as a name instead.
func (p *parser) literal() (*Literal, bool) {
	start := p.pos
	var vals [3]float64
	for i, marker := range "lch" {
		c := p.src[p.pos]
		if c != byte(marker) && c != byte(marker)-'a'+'A' {
			p.pos = start
			return nil, false
		}
		p.pos++
		if !p.atNumber() {
			p.pos = start
			return nil, false
		}
		v, err := p.number()
		if err != nil {
			p.pos = start
			return nil, false
		}
		vals[i] = v
		if i < 2 && p.eof() {
			p.pos = start
			return nil, false
		}
	}
	return &Literal{Span: Span{start, p.pos}, L: vals[0], C: vals[1], H: vals[2]}, true
}

func (p *parser) number() (float64, error) {
	start := p.pos
	if !p.eof() && (p.src[p.pos] == '+' || p.src[p.pos] == '-') {
		p.pos++
	}
	digits := p.pos
	for !p.eof() && (isDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
		p.pos++
	}
	if p.pos == digits {
		p.pos = start
		return 0, p.errorf(ErrSyntax, "expected number")
	}
	text := p.src[start:p.pos]
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, p.errorAt(start, ErrNumber, "%q", text)
	}
	return v, nil
}

// atNumber reports whether a number starts at the current position.
func (p *parser) atNumber() bool {
	i := p.pos
	if i < len(p.src) && (p.src[i] == '+' || p.src[i] == '-') {
		i++
	}
	return i < len(p.src) && (isDigit(p.src[i]) || p.src[i] == '.')
}

func (p *parser) name() string {
	start := p.pos
	for !p.eof() && isNameChar(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

// skipSpace advances over whitespace and reports whether any was skipped.
func (p *parser) skipSpace() bool {
	start := p.pos
	for !p.eof() && isSpace(p.src[p.pos]) {
		p.pos++
	}
	return p.pos > start
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek(c byte) bool {
	return !p.eof() && p.src[p.pos] == c
}

func (p *parser) accept(c byte) bool {
	if p.peek(c) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) hasPrefix(s string) bool {
	return len(p.src)-p.pos >= len(s) && p.src[p.pos:p.pos+len(s)] == s
}

func (p *parser) errorf(kind error, format string, args ...any) *SyntaxError {
	return p.errorAt(p.pos, kind, format, args...)
}

func (p *parser) errorAt(offset int, kind error, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Err:  kind,
		Line: p.line,
		Col:  offset + 1,
		Msg:  fmt.Sprintf(format, args...),
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

// isNameChar reports whether c may appear in an identifier.
func isNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		isDigit(c) ||
		c == '_' || c == '-'
}

// IsName reports whether s is a valid identifier.
func IsName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isNameChar(s[i]) {
			return false
		}
	}
	return true
}

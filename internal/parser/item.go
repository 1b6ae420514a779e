package parser

import (
	"strings"
)

// Item is one definition from a palette file: a *ColorDef or a *FuncDef.
type Item interface {
	ItemName() string
	item()
}

// ColorDef binds a name to a color expression: name = expr
type ColorDef struct {
	Name     string
	NameSpan Span
	Expr     Expr
}

// FuncDef defines a palette function: fn name(a, b) = expr
type FuncDef struct {
	Name       string
	NameSpan   Span
	Params     []string
	ParamSpans []Span
	Body       Expr
}

func (d *ColorDef) ItemName() string { return d.Name }
func (d *FuncDef) ItemName() string  { return d.Name }

func (*ColorDef) item() {}
func (*FuncDef) item()  {}

// IsComment reports whether a palette line carries no definition.
func IsComment(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || trimmed[0] == '#'
}

// ParseLine parses a single palette file line. Blank lines and comments
// return a nil Item and a nil error. lineNo is recorded in errors; pass 0
// when the line number is unknown. Spans in the result are byte offsets
// within text.
func ParseLine(lineNo int, text string) (Item, error) {
	if IsComment(text) {
		return nil, nil
	}
	p := &parser{src: text, line: lineNo}
	p.skipSpace()
	if p.isFuncHeader() {
		return p.parseFuncDef()
	}
	return p.parseColorDef()
}

// isFuncHeader reports whether the line starts with "fn" followed by
// whitespace and a name. "fn = ..." is a color called fn.
func (p *parser) isFuncHeader() bool {
	if !p.hasPrefix("fn") {
		return false
	}
	i := p.pos + 2
	if i >= len(p.src) || !isSpace(p.src[i]) {
		return false
	}
	for i < len(p.src) && isSpace(p.src[i]) {
		i++
	}
	return i < len(p.src) && isNameChar(p.src[i])
}

func (p *parser) parseColorDef() (Item, error) {
	eq := strings.IndexByte(p.src, '=')
	if eq < 0 {
		return nil, p.errorf(ErrMalformedLine, "expected 'name = expression'")
	}
	name := strings.TrimSpace(p.src[:eq])
	if name == "" {
		return nil, p.errorAt(eq, ErrMalformedLine, "missing name before '='")
	}
	if !IsName(name) {
		return nil, p.errorf(ErrMalformedLine, "invalid color name %q", name)
	}
	nameStart := strings.Index(p.src, name)
	def := &ColorDef{
		Name:     name,
		NameSpan: Span{nameStart, nameStart + len(name)},
	}

	p.pos = eq + 1
	expr, err := p.parseAll()
	if err != nil {
		return nil, err
	}
	def.Expr = expr
	return def, nil
}

func (p *parser) parseFuncDef() (Item, error) {
	p.pos += len("fn")
	p.skipSpace()

	start := p.pos
	def := &FuncDef{Name: p.name()}
	def.NameSpan = Span{start, p.pos}

	p.skipSpace()
	if !p.accept('(') {
		return nil, p.errorf(ErrMalformedLine, "expected '(' after function name %s", def.Name)
	}

	seen := make(map[string]bool)
	for {
		p.skipSpace()
		start := p.pos
		param := p.name()
		if param == "" {
			return nil, p.errorf(ErrMalformedLine, "expected parameter name")
		}
		if seen[param] {
			return nil, p.errorAt(start, ErrMalformedLine, "%q", param).withKind(ErrDuplicateParam)
		}
		seen[param] = true
		def.Params = append(def.Params, param)
		def.ParamSpans = append(def.ParamSpans, Span{start, p.pos})

		p.skipSpace()
		if p.accept(',') {
			continue
		}
		if p.accept(')') {
			break
		}
		return nil, p.errorf(ErrMalformedLine, "expected ',' or ')' in parameter list of %s", def.Name)
	}

	p.skipSpace()
	if !p.accept('=') {
		return nil, p.errorf(ErrMalformedLine, "expected '=' after parameter list of %s", def.Name)
	}

	body, err := p.parseAll()
	if err != nil {
		return nil, err
	}
	def.Body = body
	return def, nil
}

package parser

// Span is a half-open byte range [Start, End) in the text an expression was
// parsed from.
type Span struct {
	Start, End int
}

// Range returns the span itself so that nodes embedding a Span satisfy Expr.
func (s Span) Range() Span { return s }

// Contains reports whether offset lies inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Expr is an unresolved color expression. The set of implementations is
// closed; resolvers switch on the concrete type.
type Expr interface {
	Range() Span
	expr()
}

// Ident references a palette color or a function parameter.
type Ident struct {
	Span
	Name string
}

// Named references a CSS color keyword, written $name.
type Named struct {
	Span
	Name string
}

// Literal is an opaque LCh color written as L<l>C<c>H<h>.
type Literal struct {
	Span
	L, C, H float64
}

// Shade lightens (or darkens, when negative) X by Percent of the remaining
// distance to white (or black).
type Shade struct {
	Span
	X       Expr
	Percent float64
}

// Saturate scales the chroma of X relative to the maximum by Percent.
type Saturate struct {
	Span
	X       Expr
	Percent float64
}

// WithChroma replaces the chroma of X.
type WithChroma struct {
	Span
	X     Expr
	Value float64
}

// WithLightness replaces the lightness of X.
type WithLightness struct {
	Span
	X     Expr
	Value float64
}

// WithAlpha replaces the alpha of X with Percent/100.
type WithAlpha struct {
	Span
	X       Expr
	Percent float64
}

// Mix interpolates from A to B; Percent 0 is A and 100 is B.
type Mix struct {
	Span
	A, B    Expr
	Percent float64
}

// Complement rotates the hue of X by 180 degrees.
type Complement struct {
	Span
	X Expr
}

// Call invokes a palette function.
type Call struct {
	Span
	Name     string
	NameSpan Span
	Args     []Expr
}

func (*Ident) expr()         {}
func (*Named) expr()         {}
func (*Literal) expr()       {}
func (*Shade) expr()         {}
func (*Saturate) expr()      {}
func (*WithChroma) expr()    {}
func (*WithLightness) expr() {}
func (*WithAlpha) expr()     {}
func (*Mix) expr()           {}
func (*Complement) expr()    {}
func (*Call) expr()          {}

// Walk calls fn for e and every sub-expression in depth-first order. If fn
// returns false the children of that node are skipped.
func Walk(e Expr, fn func(Expr) bool) {
	if e == nil || !fn(e) {
		return
	}
	switch n := e.(type) {
	case *Shade:
		Walk(n.X, fn)
	case *Saturate:
		Walk(n.X, fn)
	case *WithChroma:
		Walk(n.X, fn)
	case *WithLightness:
		Walk(n.X, fn)
	case *WithAlpha:
		Walk(n.X, fn)
	case *Complement:
		Walk(n.X, fn)
	case *Mix:
		Walk(n.A, fn)
		Walk(n.B, fn)
	case *Call:
		for _, arg := range n.Args {
			Walk(arg, fn)
		}
	}
}

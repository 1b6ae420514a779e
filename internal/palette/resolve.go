package palette

import (
	"fmt"
	"maps"
	"slices"

	"github.com/jsvensson/unipalette/internal/color"
	"github.com/jsvensson/unipalette/internal/parser"
)

// MaxCallDepth bounds function call nesting so that self-referencing
// functions fail instead of overflowing the stack.
const MaxCallDepth = 64

// scope holds the arguments bound for a single function call.
type scope map[string]color.Color

type resolver struct {
	p     *Palette
	depth int
}

// Resolve evaluates e against the palette.
func (p *Palette) Resolve(e parser.Expr) (color.Color, error) {
	r := &resolver{p: p}
	return r.resolve(e, nil)
}

func (r *resolver) resolve(e parser.Expr, locals scope) (color.Color, error) {
	switch n := e.(type) {
	case *parser.Literal:
		return color.LCh(n.L, n.C, n.H), nil

	case *parser.Ident:
		if c, ok := locals[n.Name]; ok {
			return c, nil
		}
		if c, ok := r.p.colors[n.Name]; ok {
			return c, nil
		}
		candidates := append(slices.Collect(maps.Keys(locals)), r.p.order...)
		return color.Color{}, &ResolveError{
			Err:  ErrUnknownIdentifier,
			Name: n.Name,
			Span: n.Span,
			Hint: suggest(n.Name, candidates),
		}

	case *parser.Named:
		c, ok := color.Named(n.Name)
		if !ok {
			return color.Color{}, &ResolveError{
				Err:  ErrUnknownNamedColor,
				Name: n.Name,
				Span: n.Span,
				Hint: suggest(n.Name, color.Names()),
			}
		}
		return c, nil

	case *parser.Shade:
		c, err := r.resolve(n.X, locals)
		if err != nil {
			return color.Color{}, err
		}
		return c.Lighten(n.Percent / 100), nil

	case *parser.Saturate:
		c, err := r.resolve(n.X, locals)
		if err != nil {
			return color.Color{}, err
		}
		return c.Saturate(n.Percent / 100), nil

	case *parser.WithChroma:
		c, err := r.resolve(n.X, locals)
		if err != nil {
			return color.Color{}, err
		}
		return c.WithChroma(n.Value), nil

	case *parser.WithLightness:
		c, err := r.resolve(n.X, locals)
		if err != nil {
			return color.Color{}, err
		}
		return c.WithLightness(n.Value), nil

	case *parser.WithAlpha:
		c, err := r.resolve(n.X, locals)
		if err != nil {
			return color.Color{}, err
		}
		return c.WithAlpha(n.Percent / 100), nil

	case *parser.Complement:
		c, err := r.resolve(n.X, locals)
		if err != nil {
			return color.Color{}, err
		}
		return c.Complement(), nil

	case *parser.Mix:
		a, err := r.resolve(n.A, locals)
		if err != nil {
			return color.Color{}, err
		}
		b, err := r.resolve(n.B, locals)
		if err != nil {
			return color.Color{}, err
		}
		return color.Mix(a, b, n.Percent/100), nil

	case *parser.Call:
		return r.call(n, locals)
	}
	return color.Color{}, fmt.Errorf("unsupported expression %T", e)
}

// call binds the resolved arguments to the function's parameters and
// evaluates its body. The body sees only those bindings and the palette,
// never the caller's locals.
func (r *resolver) call(n *parser.Call, locals scope) (color.Color, error) {
	fn, ok := r.p.funcs[n.Name]
	if !ok {
		return color.Color{}, &ResolveError{
			Err:  ErrUnknownFunction,
			Name: n.Name,
			Span: n.NameSpan,
			Hint: suggest(n.Name, r.p.FuncNames()),
		}
	}
	if len(n.Args) != len(fn.Params) {
		return color.Color{}, &ResolveError{
			Err:    ErrArity,
			Name:   n.Name,
			Span:   n.Span,
			Detail: fmt.Sprintf("takes %d, got %d", len(fn.Params), len(n.Args)),
		}
	}
	if r.depth >= MaxCallDepth {
		return color.Color{}, &ResolveError{
			Err:    ErrCallDepth,
			Name:   n.Name,
			Span:   n.Span,
			Detail: fmt.Sprintf("more than %d nested calls", MaxCallDepth),
		}
	}

	args := make(scope, len(fn.Params))
	for i, param := range fn.Params {
		c, err := r.resolve(n.Args[i], locals)
		if err != nil {
			return color.Color{}, err
		}
		args[param] = c
	}

	r.depth++
	defer func() { r.depth-- }()
	return r.resolve(fn.Body, args)
}

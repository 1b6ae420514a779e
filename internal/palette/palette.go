// Package palette holds resolved palettes and evaluates color expressions
// against them.
package palette

import (
	"maps"
	"slices"

	"github.com/jsvensson/unipalette/internal/color"
	"github.com/jsvensson/unipalette/internal/parser"
)

// Palette maps names to resolved colors and to function definitions.
// A Palette is immutable once returned by Builder.Finish and may be shared
// between goroutines.
type Palette struct {
	colors map[string]color.Color
	funcs  map[string]*parser.FuncDef
	order  []string
}

func newPalette() *Palette {
	return &Palette{
		colors: make(map[string]color.Color),
		funcs:  make(map[string]*parser.FuncDef),
	}
}

// Color returns the resolved color bound to name.
func (p *Palette) Color(name string) (color.Color, bool) {
	c, ok := p.colors[name]
	return c, ok
}

// Func returns the function definition bound to name.
func (p *Palette) Func(name string) (*parser.FuncDef, bool) {
	fn, ok := p.funcs[name]
	return fn, ok
}

// Names returns color names in the order they were first defined.
func (p *Palette) Names() []string {
	return slices.Clone(p.order)
}

// FuncNames returns function names sorted alphabetically.
func (p *Palette) FuncNames() []string {
	return slices.Sorted(maps.Keys(p.funcs))
}

// Len returns the number of colors.
func (p *Palette) Len() int { return len(p.colors) }

// Eval parses src as a single expression and resolves it.
func (p *Palette) Eval(src string) (color.Color, error) {
	e, err := parser.ParseExpr(src)
	if err != nil {
		return color.Color{}, err
	}
	return p.Resolve(e)
}

// Package unipalette evaluates color expressions against palettes of named
// colors and user-defined functions.
package unipalette

import (
	"fmt"

	"github.com/jsvensson/unipalette/internal/palette"
	"github.com/jsvensson/unipalette/internal/render"
)

// Palette is a resolved palette, safe for concurrent use.
type Palette = palette.Palette

// Representation and AlphaMode select the output notation of Eval.
type (
	Representation = render.Representation
	AlphaMode      = render.AlphaMode
)

const (
	Hex       = render.Hex
	LinearHex = render.LinearHex
	CSSRGB    = render.CSSRGB
	CSSLCH    = render.CSSLCH

	AlphaNone   = render.AlphaNone
	AlphaSuffix = render.AlphaSuffix
	AlphaPrefix = render.AlphaPrefix
)

// Load reads a palette file and resolves every color it defines.
func Load(path string) (*Palette, error) {
	p, err := palette.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading palette: %w", err)
	}
	return p, nil
}

// Eval parses and resolves expr against p and formats the result.
func Eval(p *Palette, expr string, rep Representation, alpha AlphaMode) (string, error) {
	c, err := p.Eval(expr)
	if err != nil {
		return "", fmt.Errorf("evaluating %q: %w", expr, err)
	}
	return render.Render(c, rep, alpha), nil
}

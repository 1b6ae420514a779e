// Package render formats resolved colors as text.
package render

import (
	"errors"
	"fmt"

	"github.com/jsvensson/unipalette/internal/color"
)

// Representation selects the output notation.
type Representation int

const (
	Hex       Representation = iota // #rrggbb
	LinearHex                       // #rrggbb, linear-light channels
	CSSRGB                          // rgb(R% G% B%)
	CSSLCH                          // lch(L% C H)
)

// AlphaMode controls whether and where alpha is written.
type AlphaMode int

const (
	AlphaNone AlphaMode = iota
	AlphaSuffix
	AlphaPrefix
)

// ErrSelector is returned for selectors that name no representation.
var ErrSelector = errors.New("invalid output selector")

var selectors = map[byte]Representation{
	'#': Hex,
	'~': LinearHex,
	'$': CSSRGB,
	'!': CSSLCH,
}

// Selector returns the character that selects r in template tags and on the
// command line.
func (r Representation) Selector() byte {
	for b, rep := range selectors {
		if rep == r {
			return b
		}
	}
	return '#'
}

func (r Representation) String() string {
	switch r {
	case Hex:
		return "hex"
	case LinearHex:
		return "linear hex"
	case CSSRGB:
		return "css rgb"
	case CSSLCH:
		return "css lch"
	}
	return fmt.Sprintf("Representation(%d)", int(r))
}

// ParseRepresentation maps a selector character to a Representation.
func ParseRepresentation(b byte) (Representation, error) {
	rep, ok := selectors[b]
	if !ok {
		return Hex, fmt.Errorf("%w %q: want one of # ~ $ !", ErrSelector, string(b))
	}
	return rep, nil
}

// AlphaFlag maps the optional alpha flag of a template tag: "a" writes
// alpha after the channels, "A" before them, "" omits it.
func AlphaFlag(flag string) (AlphaMode, error) {
	switch flag {
	case "":
		return AlphaNone, nil
	case "a":
		return AlphaSuffix, nil
	case "A":
		return AlphaPrefix, nil
	}
	return AlphaNone, fmt.Errorf("%w: unknown alpha flag %q", ErrSelector, flag)
}

// ParseSelector parses a command-line selector: a representation character
// optionally followed by an alpha flag, e.g. "#", "#a", "$a", "~A".
func ParseSelector(s string) (Representation, AlphaMode, error) {
	if s == "" {
		return Hex, AlphaNone, nil
	}
	rep, err := ParseRepresentation(s[0])
	if err != nil {
		return Hex, AlphaNone, err
	}
	alpha, err := AlphaFlag(s[1:])
	if err != nil {
		return Hex, AlphaNone, err
	}
	return rep, alpha, nil
}

// Render formats c in the given representation. For the CSS forms any
// alpha mode other than AlphaNone appends "/ alpha".
func Render(c color.Color, rep Representation, alpha AlphaMode) string {
	switch rep {
	case LinearHex:
		return hex(c.LinearRGBA8(), alpha)
	case CSSRGB:
		r, g, b, a := c.RGBAf()
		if alpha == AlphaNone {
			return fmt.Sprintf("rgb(%.2f%% %.2f%% %.2f%%)", r*100, g*100, b*100)
		}
		return fmt.Sprintf("rgb(%.2f%% %.2f%% %.2f%% / %.2f)", r*100, g*100, b*100, a)
	case CSSLCH:
		l, ch, h := color.FormatFloat(c.L), color.FormatFloat(c.C), color.FormatFloat(c.Hue())
		if alpha == AlphaNone {
			return fmt.Sprintf("lch(%s%% %s %s)", l, ch, h)
		}
		return fmt.Sprintf("lch(%s%% %s %s / %s)", l, ch, h, color.FormatFloat(c.Alpha))
	default:
		return hex(c.RGBA8(), alpha)
	}
}

func hex(c color.RGBA8, alpha AlphaMode) string {
	switch alpha {
	case AlphaSuffix:
		return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
	case AlphaPrefix:
		return fmt.Sprintf("#%02x%02x%02x%02x", c.A, c.R, c.G, c.B)
	}
	return c.Hex()
}

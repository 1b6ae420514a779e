package color

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBA8 is an 8-bit per channel color.
type RGBA8 struct {
	R, G, B, A uint8
}

// Hex returns the color as "#rrggbb".
func (c RGBA8) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// srgb converts c into (possibly out of gamut) gamma-corrected sRGB.
// go-colorful scales L and C to [0, 1] instead of [0, 100].
func (c Color) srgb() colorful.Color {
	return colorful.Hcl(c.Hue(), c.C/100, c.L/100)
}

// RGBA8 converts c to gamma-corrected sRGB, clamping every channel into
// range before quantizing.
func (c Color) RGBA8() RGBA8 {
	r, g, b := c.srgb().Clamped().RGB255()
	return RGBA8{R: r, G: g, B: b, A: quantize(c.Alpha)}
}

// LinearRGBA8 converts c to linear-light sRGB, clamping every channel into
// range before quantizing.
func (c Color) LinearRGBA8() RGBA8 {
	r, g, b := c.srgb().Clamped().LinearRgb()
	return RGBA8{R: quantize(r), G: quantize(g), B: quantize(b), A: quantize(c.Alpha)}
}

// RGBAf returns the clamped gamma-corrected sRGB channels and alpha in [0, 1].
func (c Color) RGBAf() (r, g, b, a float64) {
	s := c.srgb().Clamped()
	return s.R, s.G, s.B, clamp01(c.Alpha)
}

// FromRGB converts gamma-corrected 8-bit sRGB into an opaque Color.
func FromRGB(r, g, b uint8) Color {
	col := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, ch, l := col.Hcl()
	return Color{L: l * 100, C: ch * 100, H: h, Alpha: 1}
}

func quantize(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

// clamp01 clamps a value to the [0, 1] range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

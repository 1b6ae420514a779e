package color

import (
	"fmt"
	"math"
	"strconv"
)

// MaxLightness is the upper bound of the L channel.
const MaxLightness = 100.0

// MaxChroma is the reference chroma used by relative saturation.
const MaxChroma = 128.0

// Color is a CIE LCh(ab) color with a D65 white point and an alpha channel.
// L is lightness [0, 100], C is chroma (>= 0, unbounded), H is the hue angle
// in degrees as stored and Alpha is opacity [0, 1].
//
// Operations never modify the receiver; they return a new value.
type Color struct {
	L, C, H, Alpha float64
}

// LCh returns an opaque color with the given components.
func LCh(l, c, h float64) Color {
	return Color{L: l, C: c, H: h, Alpha: 1}
}

// Hue returns the hue normalized to [0, 360).
func (c Color) Hue() float64 {
	h := math.Mod(c.H, 360)
	if h < 0 {
		h += 360
	}
	// tiny negative angles round up to exactly 360
	if h >= 360 {
		h = 0
	}
	return h
}

// Lighten moves lightness towards white (f > 0) or black (f < 0) by the
// fraction f of the remaining distance.
func (c Color) Lighten(f float64) Color {
	diff := c.L
	if f >= 0 {
		diff = MaxLightness - c.L
	}
	c.L = math.Max(c.L+math.Max(diff, 0)*f, 0)
	return c
}

// LightenFixed shifts lightness by f * MaxLightness.
func (c Color) LightenFixed(f float64) Color {
	c.L = math.Max(c.L+MaxLightness*f, 0)
	return c
}

// Saturate moves chroma towards MaxChroma (f > 0) or gray (f < 0) by the
// fraction f of the remaining distance.
func (c Color) Saturate(f float64) Color {
	diff := c.C
	if f >= 0 {
		diff = MaxChroma - c.C
	}
	c.C = math.Max(c.C+math.Max(diff, 0)*f, 0)
	return c
}

// WithChroma returns c with chroma set to v.
func (c Color) WithChroma(v float64) Color {
	c.C = v
	return c
}

// WithLightness returns c with lightness set to v.
func (c Color) WithLightness(v float64) Color {
	c.L = v
	return c
}

// WithAlpha returns c with alpha set to a.
func (c Color) WithAlpha(a float64) Color {
	c.Alpha = a
	return c
}

// Rotate adds deg to the hue. The result is not normalized.
func (c Color) Rotate(deg float64) Color {
	c.H += deg
	return c
}

// Complement returns c rotated by half a turn.
func (c Color) Complement() Color {
	return c.Rotate(180)
}

// Mix interpolates linearly from a (t = 0) to b (t = 1). Hue travels along
// the shorter arc. t is not clamped, so values outside [0, 1] extrapolate.
func Mix(a, b Color, t float64) Color {
	return Color{
		L:     a.L + (b.L-a.L)*t,
		C:     a.C + (b.C-a.C)*t,
		H:     a.H + hueDelta(a.H, b.H)*t,
		Alpha: a.Alpha + (b.Alpha-a.Alpha)*t,
	}
}

// hueDelta returns the signed difference to - from in (-180, 180].
func hueDelta(from, to float64) float64 {
	d := math.Mod(to-from, 360)
	switch {
	case d > 180:
		d -= 360
	case d <= -180:
		d += 360
	}
	return d
}

// String renders c the way it is written as a literal, e.g. "L50C20H30",
// with the alpha appended as a percentage when it is not 1.
func (c Color) String() string {
	s := fmt.Sprintf("L%sC%sH%s", FormatFloat(c.L), FormatFloat(c.C), FormatFloat(c.Hue()))
	if c.Alpha != 1 {
		s += " a" + FormatFloat(c.Alpha*100)
	}
	return s
}

// FormatFloat formats v with the fewest digits that round-trip.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

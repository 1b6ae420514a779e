package color

import "golang.org/x/image/colornames"

// Named looks up an SVG 1.1 / CSS color keyword such as "red" or
// "darkslategray" and converts it into LCh. Names are case-sensitive.
func Named(name string) (Color, bool) {
	rgba, ok := colornames.Map[name]
	if !ok {
		return Color{}, false
	}
	return FromRGB(rgba.R, rgba.G, rgba.B), true
}

// Names returns the sorted list of known color names.
func Names() []string {
	return colornames.Names
}

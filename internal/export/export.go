// Package export writes resolved palettes in formats other tools consume.
package export

import (
	"fmt"
	"strings"

	"github.com/jsvensson/unipalette/internal/palette"
	"github.com/jsvensson/unipalette/internal/parser"
	"github.com/jsvensson/unipalette/internal/render"
	"gopkg.in/yaml.v3"
)

// Document is the YAML export of a palette.
type Document struct {
	Colors    []Color    `yaml:"colors"`
	Functions []Function `yaml:"functions,omitempty"`
}

type Color struct {
	Name  string `yaml:"name"`
	Hex   string `yaml:"hex"`
	Value string `yaml:"value"`
	LCh   LCh    `yaml:"lch"`
}

type LCh struct {
	L     float64 `yaml:"l"`
	C     float64 `yaml:"c"`
	H     float64 `yaml:"h"`
	Alpha float64 `yaml:"alpha"`
}

type Function struct {
	Name   string   `yaml:"name"`
	Params []string `yaml:"params,flow"`
	Body   string   `yaml:"body"`
}

// Build collects the palette colors in definition order, each rendered
// with rep and alpha, followed by the function signatures.
func Build(p *palette.Palette, rep render.Representation, alpha render.AlphaMode) Document {
	var doc Document
	for _, name := range p.Names() {
		c, _ := p.Color(name)
		doc.Colors = append(doc.Colors, Color{
			Name:  name,
			Hex:   c.RGBA8().Hex(),
			Value: render.Render(c, rep, alpha),
			LCh:   LCh{L: c.L, C: c.C, H: c.Hue(), Alpha: c.Alpha},
		})
	}
	for _, name := range p.FuncNames() {
		fn, _ := p.Func(name)
		doc.Functions = append(doc.Functions, Function{
			Name:   name,
			Params: fn.Params,
			Body:   parser.Print(fn.Body),
		})
	}
	return doc
}

// YAML encodes the palette as a YAML document.
func YAML(p *palette.Palette, rep render.Representation, alpha render.AlphaMode) ([]byte, error) {
	out, err := yaml.Marshal(Build(p, rep, alpha))
	if err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	return out, nil
}

// CSS renders the palette as custom properties on :root.
func CSS(p *palette.Palette, rep render.Representation, alpha render.AlphaMode) string {
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, name := range p.Names() {
		c, _ := p.Color(name)
		fmt.Fprintf(&b, "  --%s: %s;\n", name, render.Render(c, rep, alpha))
	}
	b.WriteString("}\n")
	return b.String()
}

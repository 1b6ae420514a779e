package export

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jsvensson/unipalette/internal/palette"
	"github.com/jsvensson/unipalette/internal/render"
	"gopkg.in/yaml.v3"
)

func testPalette(t *testing.T) *palette.Palette {
	t.Helper()
	p, err := palette.Load(strings.NewReader(`white = L100C0H0
gray = L50C0H-90 a 50
fn dim(c, other) = c *25* other
fn fade(c) = c a 50
`))
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestBuild(t *testing.T) {
	doc := Build(testPalette(t), render.Hex, render.AlphaSuffix)

	want := Document{
		Colors: []Color{
			{Name: "white", Hex: "#ffffff", Value: "#ffffffff", LCh: LCh{L: 100, C: 0, H: 0, Alpha: 1}},
			{Name: "gray", Hex: "#777777", Value: "#77777780", LCh: LCh{L: 50, C: 0, H: 270, Alpha: 0.5}},
		},
		Functions: []Function{
			{Name: "dim", Params: []string{"c", "other"}, Body: "c *25* other"},
			{Name: "fade", Params: []string{"c"}, Body: "c a 50"},
		},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestYAML(t *testing.T) {
	out, err := YAML(testPalette(t), render.CSSRGB, render.AlphaNone)
	if err != nil {
		t.Fatalf("YAML() error: %v", err)
	}

	var doc Document
	if err := yaml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, out)
	}
	if len(doc.Colors) != 2 || doc.Colors[0].Value != "rgb(100.00% 100.00% 100.00%)" {
		t.Errorf("colors = %+v", doc.Colors)
	}
	if !strings.Contains(string(out), "params: [c, other]") {
		t.Errorf("params should be written in flow style:\n%s", out)
	}
}

func TestCSS(t *testing.T) {
	got := CSS(testPalette(t), render.CSSLCH, render.AlphaSuffix)
	want := `:root {
  --white: lch(100% 0 0 / 1);
  --gray: lch(50% 0 270 / 0.5);
}
`
	if got != want {
		t.Errorf("CSS() = %q, want %q", got, want)
	}
}

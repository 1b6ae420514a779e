package preview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"
	"github.com/jsvensson/unipalette/internal/color"
	"github.com/jsvensson/unipalette/internal/palette"
)

func testPalette(t *testing.T) *palette.Palette {
	t.Helper()
	p, err := palette.Load(strings.NewReader(`orange = L70C60H60
navy   = L20C40H260
gray   = L50C0H0
black  = L0C0H0
teal   = L50C30H190
`))
	if err != nil {
		t.Fatal(err)
	}
	return p
}

// plain returns a Preview whose output is not a terminal, so no escape
// sequences are emitted.
func plain(width int) *Preview {
	return New(&bytes.Buffer{}, width)
}

func names(swatches []Swatch) []string {
	out := make([]string, len(swatches))
	for i, s := range swatches {
		out[i] = s.Name
	}
	return out
}

func TestSwatches_Order(t *testing.T) {
	got := names(Swatches(testPalette(t)))
	// L*hue: black 0, gray 0, orange 4200, navy 5200, teal 9500
	want := []string{"black", "gray", "orange", "navy", "teal"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Swatches() order mismatch (-want +got):\n%s", diff)
	}
}

func TestGrid(t *testing.T) {
	pv := plain(40)
	out := pv.Grid(Swatches(testPalette(t)))

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d rows, want 3:\n%s", len(lines), out)
	}
	if w := lipgloss.Width(lines[0]); w != 2*CellWidth {
		t.Errorf("row width = %d, want %d", w, 2*CellWidth)
	}
	if w := lipgloss.Width(lines[2]); w != CellWidth {
		t.Errorf("last row width = %d, want %d", w, CellWidth)
	}
	for _, name := range []string{"black", "gray", "orange", "navy", "teal"} {
		if !strings.Contains(out, name) {
			t.Errorf("grid is missing %s", name)
		}
	}
}

func TestGrid_NarrowTerminal(t *testing.T) {
	out := plain(5).Grid(Swatches(testPalette(t)))
	if n := strings.Count(out, "\n") + 1; n != 5 {
		t.Errorf("got %d rows, want one swatch per row", n)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"short", "short"},
		{"exactly-16-chars", "exactly-16-chars"},
		{"a-very-long-color-name", "a-very-long-col…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := label(tt.name)
			if got != tt.want {
				t.Errorf("label() = %q, want %q", got, tt.want)
			}
			if lipgloss.Width(got) > CellWidth {
				t.Errorf("label %q is wider than a cell", got)
			}
		})
	}
}

func TestShades(t *testing.T) {
	out := plain(80).Shades(Swatches(testPalette(t)))
	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want header plus 5 rows:\n%s", len(lines), out)
	}
	for _, step := range []string{"-0.5", "-0.25", "0", "0.25", "0.5"} {
		if !strings.Contains(lines[0], step) {
			t.Errorf("header %q is missing step %s", lines[0], step)
		}
	}
	if !strings.HasPrefix(lines[1], "black   ") {
		t.Errorf("row = %q, want name padded to the longest name", lines[1])
	}
	if n := strings.Count(lines[1], "█"); n != 5*len(ShadeSteps) {
		t.Errorf("row has %d blocks, want %d", n, 5*len(ShadeSteps))
	}
}

func TestTextColor(t *testing.T) {
	if got := TextColor(color.LCh(80, 0, 0)); got != "#000000" {
		t.Errorf("light color text = %s, want black", got)
	}
	if got := TextColor(color.LCh(50, 0, 0)); got != "#ffffff" {
		t.Errorf("mid color text = %s, want white", got)
	}
}

func TestChip(t *testing.T) {
	pv := plain(80)
	if got := pv.Chip(color.LCh(50, 0, 0), "#777777", 0); got != "#777777" {
		t.Errorf("Chip() = %q", got)
	}
	if got := pv.Chip(color.LCh(50, 0, 0), "x", 5); got != "  x  " {
		t.Errorf("Chip() = %q, want centered text", got)
	}
	if got := pv.Header("colors.pal"); got != "Unipalette|colors.pal" {
		t.Errorf("Header() = %q", got)
	}
}

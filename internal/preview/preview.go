// Package preview draws palettes as colored swatches in the terminal.
package preview

import (
	"cmp"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jsvensson/unipalette/internal/color"
	"github.com/jsvensson/unipalette/internal/palette"
	"golang.org/x/term"
)

// CellWidth is the width of one swatch in the grid.
const CellWidth = 16

// ShadeSteps are the fixed lightness offsets shown by Shades.
var ShadeSteps = []float64{-0.5, -0.25, 0, 0.25, 0.5}

// Swatch is a named palette color.
type Swatch struct {
	Name  string
	Color color.Color
}

// Swatches returns the palette colors ordered by lightness times hue, then
// by name, which keeps related tones close together.
func Swatches(p *palette.Palette) []Swatch {
	names := p.Names()
	out := make([]Swatch, 0, len(names))
	for _, name := range names {
		c, _ := p.Color(name)
		out = append(out, Swatch{Name: name, Color: c})
	}
	slices.SortFunc(out, func(a, b Swatch) int {
		if c := cmp.Compare(a.Color.L*a.Color.Hue(), b.Color.L*b.Color.Hue()); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// Preview renders swatches for one output.
type Preview struct {
	r     *lipgloss.Renderer
	width int
}

// New returns a Preview writing for w, wrapping the grid at width columns.
// The color profile is detected from w.
func New(w io.Writer, width int) *Preview {
	return &Preview{r: lipgloss.NewRenderer(w), width: width}
}

// TerminalWidth returns the width of the terminal attached to f, or 80 when
// f is not a terminal.
func TerminalWidth(f *os.File) int {
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// Header renders the bold title line.
func (pv *Preview) Header(path string) string {
	return pv.r.NewStyle().Bold(true).Render("Unipalette") + "|" + path
}

// Grid lays out one cell per swatch, as many per row as fit the width.
func (pv *Preview) Grid(swatches []Swatch) string {
	perRow := max(pv.width/CellWidth, 1)

	var rows []string
	for chunk := range slices.Chunk(swatches, perRow) {
		cells := make([]string, len(chunk))
		for i, s := range chunk {
			cells[i] = pv.Chip(s.Color, label(s.Name), CellWidth)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

// Shades renders a table with one row per swatch and one column per entry
// of ShadeSteps.
func (pv *Preview) Shades(swatches []Swatch) string {
	nameWidth := 0
	for _, s := range swatches {
		nameWidth = max(nameWidth, len(s.Name))
	}
	nameWidth += 2

	step := pv.r.NewStyle().Width(5).Align(lipgloss.Center)
	var header strings.Builder
	header.WriteString(strings.Repeat(" ", nameWidth))
	for _, sh := range ShadeSteps {
		header.WriteString(step.Render(strconv.FormatFloat(sh, 'g', -1, 64)))
	}

	lines := []string{pv.r.NewStyle().Underline(true).Render(header.String())}
	for _, s := range swatches {
		var row strings.Builder
		row.WriteString(s.Name + strings.Repeat(" ", nameWidth-len(s.Name)))
		for _, sh := range ShadeSteps {
			hex := s.Color.LightenFixed(sh).RGBA8().Hex()
			row.WriteString(pv.r.NewStyle().Foreground(lipgloss.Color(hex)).Render("█████"))
		}
		lines = append(lines, row.String())
	}
	return strings.Join(lines, "\n")
}

// Chip renders text on a background of c. A width above zero centers the
// text in a cell of that width.
func (pv *Preview) Chip(c color.Color, text string, width int) string {
	style := pv.r.NewStyle().
		Background(lipgloss.Color(c.RGBA8().Hex())).
		Foreground(lipgloss.Color(TextColor(c)))
	if width > 0 {
		style = style.Width(width).Align(lipgloss.Center)
	}
	return style.Render(text)
}

// TextColor returns black for light colors and white for dark ones.
func TextColor(c color.Color) string {
	if c.L > 50 {
		return "#000000"
	}
	return "#ffffff"
}

// label fits a name into one grid cell.
func label(name string) string {
	if len(name) > CellWidth {
		return name[:CellWidth-1] + "…"
	}
	return name
}

package lsp

import (
	"testing"

	"github.com/jsvensson/unipalette/internal/color"
	"github.com/jsvensson/unipalette/internal/parser"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestDocumentColors(t *testing.T) {
	infos := documentColors(Analyze(testDoc))

	want := []protocol.Range{
		rng(1, 7, 14),  // gray
		rng(2, 8, 20),  // white
		rng(3, 9, 16),  // accent
		rng(5, 8, 36),  // muted
		rng(5, 26, 36), // literal inside muted
	}
	if len(infos) != len(want) {
		t.Fatalf("got %d colors, want %d: %v", len(infos), len(want), infos)
	}
	for i, info := range infos {
		if info.Range != want[i] {
			t.Errorf("color %d range = %v, want %v", i, info.Range, want[i])
		}
	}

	gray := infos[0].Color
	if gray.Red < 0.46 || gray.Red > 0.47 || gray.Alpha != 1 {
		t.Errorf("gray = %+v, want opaque #777777", gray)
	}
	if muted := infos[3].Color; muted.Alpha != 0.75 {
		t.Errorf("muted alpha = %v, want 0.75", muted.Alpha)
	}

	if got := documentColors(nil); len(got) != 0 {
		t.Errorf("documentColors(nil) = %v", got)
	}
}

func TestColorPresentation(t *testing.T) {
	picked := protocol.Color{Red: 0.2, Green: 0.4, Blue: 0.6, Alpha: 1}

	t.Run("literal", func(t *testing.T) {
		params := &protocol.ColorPresentationParams{Color: picked, Range: rng(1, 7, 14)}
		got := colorPresentation(testDoc, params)
		if len(got) != 1 {
			t.Fatalf("got %d presentations, want 1", len(got))
		}
		if got[0].TextEdit == nil || got[0].TextEdit.NewText != got[0].Label || got[0].TextEdit.Range != params.Range {
			t.Errorf("presentation = %+v", got[0])
		}

		e, err := parser.ParseExpr(got[0].Label)
		if err != nil {
			t.Fatalf("label %q does not parse: %v", got[0].Label, err)
		}
		lit, ok := e.(*parser.Literal)
		if !ok {
			t.Fatalf("label %q is a %T, want a literal", got[0].Label, e)
		}
		c := color.LCh(lit.L, lit.C, lit.H)
		if hex := c.RGBA8().Hex(); hex != "#336699" {
			t.Errorf("label %q renders as %s, want #336699", got[0].Label, hex)
		}
	})

	for name, r := range map[string]protocol.Range{
		"derived expression": rng(2, 8, 20),
		"named color":        rng(3, 9, 16),
		"multi-line":         {Start: pos(1, 7), End: pos(2, 3)},
	} {
		t.Run(name, func(t *testing.T) {
			params := &protocol.ColorPresentationParams{Color: picked, Range: r}
			if got := colorPresentation(testDoc, params); len(got) != 0 {
				t.Errorf("got %v, want no presentations", got)
			}
		})
	}
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		r    protocol.Range
		want string
	}{
		{rng(1, 0, 4), "gray"},
		{rng(1, 7, 100), "L50C0H0"},
		{rng(99, 0, 1), ""},
		{rng(1, 5, 2), ""},
	}
	for _, tt := range tests {
		if got := extractText(testDoc, tt.r); got != tt.want {
			t.Errorf("extractText(%v) = %q, want %q", tt.r, got, tt.want)
		}
	}
}

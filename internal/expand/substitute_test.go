package expand

import (
	"errors"
	"strings"
	"testing"

	"github.com/jsvensson/unipalette/internal/palette"
	"github.com/jsvensson/unipalette/internal/parser"
)

func testPalette(t *testing.T) *palette.Palette {
	t.Helper()
	p, err := palette.Load(strings.NewReader(`gray = L50C0H0
white = gray li= 100
fn fade(c) = c a 50
`))
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestSubstitute(t *testing.T) {
	p := testPalette(t)

	tests := []struct {
		name  string
		input string
		want  string
		count int
	}{
		{"no tags", "plain text\n", "plain text\n", 0},
		{"hex literal", "bg: ~~!#L50C0H0!;", "bg: #777777;", 1},
		{"hex name", "~~!#white!", "#ffffff", 1},
		{"alpha suffix", "~~!a#fade(white)!", "#ffffff80", 1},
		{"alpha prefix", "~~!A#fade(white)!", "#80ffffff", 1},
		{"linear hex", "~~!~white!", "#ffffff", 1},
		{"css rgb", "~~!$white!", "rgb(100.00% 100.00% 100.00%)", 1},
		{"css rgb alpha", "~~!a$fade(white)!", "rgb(100.00% 100.00% 100.00% / 0.50)", 1},
		{"css lch", "~~!!gray ch 10!", "lch(50% 10 0)", 1},
		{"expression with spaces", "x=~~!# gray li 100 !", "x=#ffffff", 1},
		{
			"several tags",
			"fg ~~!#white!\nbg ~~!#gray!\n",
			"fg #ffffff\nbg #777777\n",
			2,
		},
		{"unknown selector is not a tag", "~~!%white!", "~~!%white!", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n, diags := Substitute(p, "test", tt.input)
			if len(diags) != 0 {
				t.Fatalf("unexpected diagnostics: %v", diags)
			}
			if got != tt.want {
				t.Errorf("Substitute() = %q, want %q", got, tt.want)
			}
			if n != tt.count {
				t.Errorf("count = %d, want %d", n, tt.count)
			}
		})
	}
}

func TestSubstitute_Failures(t *testing.T) {
	p := testPalette(t)
	src := "a ~~!#nope! b\nok ~~!#gray!\nbad ~~!#(gray!\n"

	got, n, diags := Substitute(p, "theme.css.uncol", src)

	if want := "a  b\nok #777777\nbad \n"; got != want {
		t.Errorf("Substitute() = %q, want %q", got, want)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
	if len(diags) != 2 {
		t.Fatalf("got %d diagnostics, want 2: %v", len(diags), diags)
	}

	if d := diags[0]; d.Line != 1 || d.Expr != "nope" || !errors.Is(d.Err, palette.ErrUnknownIdentifier) {
		t.Errorf("first diagnostic = %+v", d)
	}
	if d := diags[1]; d.Line != 3 || d.Expr != "(gray" || !errors.Is(d.Err, parser.ErrSyntax) {
		t.Errorf("second diagnostic = %+v", d)
	}
	if s := diags[0].String(); !strings.HasPrefix(s, `theme.css.uncol:1: "nope": unknown identifier`) {
		t.Errorf("String() = %q", s)
	}
}

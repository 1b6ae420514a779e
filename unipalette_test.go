package unipalette

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsvensson/unipalette/internal/palette"
	"github.com/jsvensson/unipalette/internal/parser"
)

func writePalette(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "colors.pal")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEval(t *testing.T) {
	p, err := Load(writePalette(t, `# neutrals
gray = L50C0H0
white = gray li= 100
fn fade(c) = c a 50
`))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	tests := []struct {
		expr  string
		rep   Representation
		alpha AlphaMode
		want  string
	}{
		{"gray", Hex, AlphaNone, "#777777"},
		{"L50C0H0", Hex, AlphaNone, "#777777"},
		{"white", Hex, AlphaNone, "#ffffff"},
		{"fade(white)", Hex, AlphaSuffix, "#ffffff80"},
		{"fade(white)", Hex, AlphaPrefix, "#80ffffff"},
		{"white", CSSRGB, AlphaNone, "rgb(100.00% 100.00% 100.00%)"},
		{"gray ch 10 li= 60", CSSLCH, AlphaNone, "lch(60% 10 0)"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Eval(p, tt.expr, tt.rep, tt.alpha)
			if err != nil {
				t.Fatalf("Eval(%q) error: %v", tt.expr, err)
			}
			if got != tt.want {
				t.Errorf("Eval(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEval_Errors(t *testing.T) {
	p, err := Load(writePalette(t, "base = L50C0H0\n"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Eval(p, "(base", Hex, AlphaNone); !errors.Is(err, parser.ErrSyntax) {
		t.Errorf("unbalanced parens error = %v, want ErrSyntax", err)
	}
	if _, err := Eval(p, "nope", Hex, AlphaNone); !errors.Is(err, palette.ErrUnknownIdentifier) {
		t.Errorf("unknown name error = %v, want ErrUnknownIdentifier", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(writePalette(t, "base = L50C0H0\nbroken = base li\n"))
	if !errors.Is(err, parser.ErrSyntax) {
		t.Fatalf("error = %v, want ErrSyntax", err)
	}
	var le *palette.LineError
	if !errors.As(err, &le) || le.Line != 2 {
		t.Errorf("error = %v, want line 2", err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.pal")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}
}

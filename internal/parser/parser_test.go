package parser

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var ignoreSpans = cmpopts.IgnoreTypes(Span{})

func id(name string) *Ident { return &Ident{Name: name} }

func TestParseExpr(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Expr
	}{
		{"identifier", "base", id("base")},
		{"identifier with dash and digits", "base-2_dark", id("base-2_dark")},
		{"named color", "$red", &Named{Name: "red"}},
		{"literal", "L50C20H30", &Literal{L: 50, C: 20, H: 30}},
		{"lowercase literal", "l50.5c0h-10", &Literal{L: 50.5, C: 0, H: -10}},
		{"name starting with l", "lime", id("lime")},
		{"name that looks partly like a literal", "L5x", id("L5x")},
		{"surrounding whitespace", "  base \t", id("base")},
		{"parenthesized", "( base )", id("base")},
		{"lighten", "base li 10", &Shade{X: id("base"), Percent: 10}},
		{"lighten without space before number", "base li10", &Shade{X: id("base"), Percent: 10}},
		{"darken", "base li -10", &Shade{X: id("base"), Percent: -10}},
		{"set lightness", "base li= 60", &WithLightness{X: id("base"), Value: 60}},
		{"set lightness compact", "base li=60", &WithLightness{X: id("base"), Value: 60}},
		{"saturate", "base st 20", &Saturate{X: id("base"), Percent: 20}},
		{"chroma", "base ch 5.5", &WithChroma{X: id("base"), Value: 5.5}},
		{"alpha spaced", "base a 80", &WithAlpha{X: id("base"), Percent: 80}},
		{"alpha after literal", "L50C20H30a80", &WithAlpha{X: &Literal{L: 50, C: 20, H: 30}, Percent: 80}},
		{"alpha after paren", "(base)a50", &WithAlpha{X: id("base"), Percent: 50}},
		{
			"modifier chain applies left to right",
			"color li 10 st 20 a 80",
			&WithAlpha{
				X:       &Saturate{X: &Shade{X: id("color"), Percent: 10}, Percent: 20},
				Percent: 80,
			},
		},
		{"mix", "a *50* b", &Mix{A: id("a"), B: id("b"), Percent: 50}},
		{"mix compact", "a*25*b", &Mix{A: id("a"), B: id("b"), Percent: 25}},
		{
			"mix is left associative",
			"a *50* b *25* c",
			&Mix{A: &Mix{A: id("a"), B: id("b"), Percent: 50}, B: id("c"), Percent: 25},
		},
		{
			"modifiers bind tighter than mix",
			"a li 10 *50* b st 5",
			&Mix{
				A:       &Shade{X: id("a"), Percent: 10},
				B:       &Saturate{X: id("b"), Percent: 5},
				Percent: 50,
			},
		},
		{
			"parentheses group mix",
			"a *50* (b *50* c)",
			&Mix{A: id("a"), B: &Mix{A: id("b"), B: id("c"), Percent: 50}, Percent: 50},
		},
		{
			"modifier on parenthesized mix",
			"(a *50* b) li 10",
			&Shade{X: &Mix{A: id("a"), B: id("b"), Percent: 50}, Percent: 10},
		},
		{"complement", "~base", &Complement{X: id("base")}},
		{"double complement", "~~base", &Complement{X: &Complement{X: id("base")}}},
		{
			"complement binds looser than modifiers",
			"~base li 10",
			&Complement{X: &Shade{X: id("base"), Percent: 10}},
		},
		{
			"complement binds tighter than mix",
			"~a *50* b",
			&Mix{A: &Complement{X: id("a")}, B: id("b"), Percent: 50},
		},
		{"call", "f(a)", &Call{Name: "f", Args: []Expr{id("a")}}},
		{
			"call with expressions",
			"mixed($red, b li 10 , L1C2H3)",
			&Call{Name: "mixed", Args: []Expr{
				&Named{Name: "red"},
				&Shade{X: id("b"), Percent: 10},
				&Literal{L: 1, C: 2, H: 3},
			}},
		},
		{
			"nested call with modifier",
			"f(g(a)) a 50",
			&WithAlpha{X: &Call{Name: "f", Args: []Expr{&Call{Name: "g", Args: []Expr{id("a")}}}}, Percent: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseExpr(tt.input)
			if err != nil {
				t.Fatalf("ParseExpr(%q) error: %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got, ignoreSpans); diff != "" {
				t.Errorf("ParseExpr(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseExpr_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		kind    error
		wantCol int
	}{
		{"empty", "", ErrSyntax, 1},
		{"blank", "   ", ErrSyntax, 4},
		{"unbalanced open paren", "(base li 10", ErrSyntax, 12},
		{"unbalanced close paren", "base)", ErrSyntax, 5},
		{"trailing garbage", "base lime", ErrSyntax, 6},
		{"literal with trailing name", "L50C20H30foo", ErrSyntax, 10},
		{"dangling complement", "~", ErrSyntax, 2},
		{"mix without factor", "a ** b", ErrSyntax, 4},
		{"mix without closing star", "a *50 b", ErrSyntax, 6},
		{"mix without right operand", "a *50*", ErrSyntax, 7},
		{"named without name", "$", ErrSyntax, 2},
		{"unclosed call", "f(a", ErrSyntax, 4},
		{"empty call", "f()", ErrSyntax, 3},
		{"bad number", "base li 1.2.3", ErrNumber, 9},
		{"lone dot", "base a .", ErrNumber, 8},
		{"unexpected operator", "*", ErrSyntax, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseExpr(tt.input)
			if err == nil {
				t.Fatalf("ParseExpr(%q) expected error", tt.input)
			}
			if !errors.Is(err, tt.kind) {
				t.Errorf("ParseExpr(%q) error = %v, want kind %v", tt.input, err, tt.kind)
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("error is %T, want *SyntaxError", err)
			}
			if se.Col != tt.wantCol {
				t.Errorf("ParseExpr(%q) column = %d, want %d (%v)", tt.input, se.Col, tt.wantCol, err)
			}
		})
	}
}

func TestParseExpr_Spans(t *testing.T) {
	src := "mixed($red, base li 10)"
	e, err := ParseExpr(src)
	if err != nil {
		t.Fatal(err)
	}
	call := e.(*Call)
	if got := src[call.NameSpan.Start:call.NameSpan.End]; got != "mixed" {
		t.Errorf("name span = %q", got)
	}
	if call.Range() != (Span{0, len(src)}) {
		t.Errorf("call span = %+v", call.Range())
	}
	named := call.Args[0].(*Named)
	if got := src[named.Start:named.End]; got != "$red" {
		t.Errorf("named span = %q", got)
	}
	shade := call.Args[1].(*Shade)
	if got := src[shade.Start:shade.End]; got != "base li 10" {
		t.Errorf("shade span = %q", got)
	}
}

func TestWalk(t *testing.T) {
	e, err := ParseExpr("f(a *50* ~$red, b li 10)")
	if err != nil {
		t.Fatal(err)
	}
	var idents []string
	Walk(e, func(n Expr) bool {
		switch n := n.(type) {
		case *Ident:
			idents = append(idents, n.Name)
		case *Named:
			idents = append(idents, "$"+n.Name)
		}
		return true
	})
	want := []string{"a", "$red", "b"}
	if diff := cmp.Diff(want, idents); diff != "" {
		t.Errorf("Walk order mismatch (-want +got):\n%s", diff)
	}
}

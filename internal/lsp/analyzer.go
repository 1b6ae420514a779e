package lsp

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jsvensson/unipalette/internal/color"
	"github.com/jsvensson/unipalette/internal/palette"
	"github.com/jsvensson/unipalette/internal/parser"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const diagSource = "unipalette"

var (
	DiagError   = protocol.DiagnosticSeverityError
	DiagWarning = protocol.DiagnosticSeverityWarning
)

// SymbolKind tells color definitions from function definitions.
type SymbolKind int

const (
	SymbolColor SymbolKind = iota
	SymbolFunc
)

// Symbol is one definition of a palette name.
type Symbol struct {
	Name  string
	Kind  SymbolKind
	Line  int            // 0-based
	Range protocol.Range // the name in its definition
	Color *color.Color   // nil for functions and colors that failed to resolve
	Func  *parser.FuncDef
	Expr  string // canonical source of the color expression or function body
}

// RefKind classifies a name occurrence inside an expression.
type RefKind int

const (
	RefIdent RefKind = iota
	RefParam
	RefNamed
	RefCall
	RefLiteral
)

// Reference is a name or literal used inside an expression.
type Reference struct {
	Kind  RefKind
	Name  string
	Range protocol.Range
	Func  *parser.FuncDef // enclosing function, nil outside function bodies
	Color *color.Color    // set for RefNamed and RefLiteral when known
}

// ColorLocation records a resolved color at a specific source position.
type ColorLocation struct {
	Range   protocol.Range
	Color   color.Color
	Literal bool // the whole expression is an LCh literal
}

// AnalysisResult holds everything the server knows about one palette
// document.
type AnalysisResult struct {
	Diagnostics []protocol.Diagnostic
	Palette     *palette.Palette
	Symbols     []*Symbol // definitions in source order, redefinitions included
	Refs        []Reference
	Colors      []ColorLocation
}

func lineRange(line, start, end int) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: uint32(line), Character: uint32(start)},
		End:   protocol.Position{Line: uint32(line), Character: uint32(end)},
	}
}

func spanRange(line int, s parser.Span) protocol.Range {
	return lineRange(line, s.Start, s.End)
}

// Analyze parses and resolves palette source line by line. A failing line
// yields one diagnostic and analysis continues with the next line, so the
// palette holds every definition that could be resolved.
func Analyze(content string) *AnalysisResult {
	r := &AnalysisResult{}
	lines := strings.Split(content, "\n")

	defined := make(map[string]bool)
	items := make([]parser.Item, len(lines))
	for i, text := range lines {
		item, err := parser.ParseLine(i+1, text)
		if err != nil {
			r.addSyntaxError(i, text, err)
			continue
		}
		if item != nil {
			items[i] = item
			defined[item.ItemName()] = true
		}
	}

	b := palette.NewBuilder()
	for i, item := range items {
		switch d := item.(type) {
		case *parser.ColorDef:
			r.collectRefs(i, d.Expr, nil)
			sym := &Symbol{Name: d.Name, Kind: SymbolColor, Line: i, Range: spanRange(i, d.NameSpan), Expr: parser.Print(d.Expr)}
			r.define(sym)
			if err := b.Add(d); err != nil {
				r.addResolveError(i, lines[i], d.Expr.Range(), err)
				continue
			}
			c, _ := b.Color(d.Name)
			sym.Color = &c
			_, literal := d.Expr.(*parser.Literal)
			r.Colors = append(r.Colors, ColorLocation{Range: spanRange(i, d.Expr.Range()), Color: c, Literal: literal})
		case *parser.FuncDef:
			r.collectRefs(i, d.Body, d)
			r.checkBody(i, d, defined)
			r.define(&Symbol{Name: d.Name, Kind: SymbolFunc, Line: i, Range: spanRange(i, d.NameSpan), Func: d, Expr: parser.Print(d.Body)})
			_ = b.Add(d)
		}
	}
	r.Palette = b.Finish()
	slices.SortStableFunc(r.Diagnostics, func(a, b protocol.Diagnostic) int {
		return cmp.Compare(a.Range.Start.Line, b.Range.Start.Line)
	})
	return r
}

func (r *AnalysisResult) define(sym *Symbol) {
	r.Symbols = append(r.Symbols, sym)
}

func (r *AnalysisResult) addDiagnostic(rng protocol.Range, sev protocol.DiagnosticSeverity, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    rng,
		Severity: &sev,
		Source:   strPtr(diagSource),
		Message:  msg,
	})
}

// addSyntaxError marks the text from the failing column to the end of the
// line.
func (r *AnalysisResult) addSyntaxError(line int, text string, err error) {
	var se *parser.SyntaxError
	if !errors.As(err, &se) {
		r.addDiagnostic(lineRange(line, 0, len(text)), DiagError, err.Error())
		return
	}
	start := min(se.Offset(), len(text))
	msg := se.Err.Error()
	if se.Msg != "" {
		msg += ": " + se.Msg
	}
	r.addDiagnostic(lineRange(line, start, max(len(text), start)), DiagError, msg)
}

// addResolveError points at the failing name when it sits on this line.
// Failures inside a called function body carry spans of the function's own
// line, so those fall back to the whole expression.
func (r *AnalysisResult) addResolveError(line int, text string, expr parser.Span, err error) {
	var re *palette.ResolveError
	if !errors.As(err, &re) {
		r.addDiagnostic(spanRange(line, expr), DiagError, err.Error())
		return
	}
	rng := spanRange(line, expr)
	if s := re.Span; s.Start >= expr.Start && s.End <= expr.End && strings.Contains(text[s.Start:s.End], re.Name) {
		rng = spanRange(line, s)
	}
	r.addDiagnostic(rng, DiagError, re.Error())
}

func (r *AnalysisResult) collectRefs(line int, e parser.Expr, fn *parser.FuncDef) {
	parser.Walk(e, func(e parser.Expr) bool {
		switch n := e.(type) {
		case *parser.Ident:
			kind := RefIdent
			if fn != nil && isParam(fn, n.Name) {
				kind = RefParam
			}
			r.Refs = append(r.Refs, Reference{Kind: kind, Name: n.Name, Range: spanRange(line, n.Span), Func: fn})
		case *parser.Named:
			ref := Reference{Kind: RefNamed, Name: n.Name, Range: spanRange(line, n.Span)}
			if c, ok := color.Named(n.Name); ok {
				ref.Color = &c
			}
			r.Refs = append(r.Refs, ref)
		case *parser.Call:
			r.Refs = append(r.Refs, Reference{Kind: RefCall, Name: n.Name, Range: spanRange(line, n.NameSpan), Func: fn})
		case *parser.Literal:
			c := color.LCh(n.L, n.C, n.H)
			r.Refs = append(r.Refs, Reference{Kind: RefLiteral, Name: parser.Print(n), Range: spanRange(line, n.Span), Color: &c})
		}
		return true
	})
}

// checkBody warns about names in a function body that nothing in the
// document defines. Bodies resolve at call time, so a name defined further
// down is fine.
func (r *AnalysisResult) checkBody(line int, fn *parser.FuncDef, defined map[string]bool) {
	parser.Walk(fn.Body, func(e parser.Expr) bool {
		switch n := e.(type) {
		case *parser.Ident:
			if !isParam(fn, n.Name) && !defined[n.Name] {
				r.addDiagnostic(spanRange(line, n.Span), DiagWarning, fmt.Sprintf("%v %q", palette.ErrUnknownIdentifier, n.Name))
			}
		case *parser.Call:
			if !defined[n.Name] {
				r.addDiagnostic(spanRange(line, n.NameSpan), DiagWarning, fmt.Sprintf("%v %q", palette.ErrUnknownFunction, n.Name))
			}
		case *parser.Named:
			if _, ok := color.Named(n.Name); !ok {
				r.addDiagnostic(spanRange(line, n.Span), DiagWarning, fmt.Sprintf("%v %q", palette.ErrUnknownNamedColor, n.Name))
			}
		}
		return true
	})
}

func isParam(fn *parser.FuncDef, name string) bool {
	return slices.Contains(fn.Params, name)
}

func strPtr(s string) *string {
	return &s
}

package lsp

import (
	"math"
	"strings"

	"github.com/jsvensson/unipalette/internal/color"
	"github.com/jsvensson/unipalette/internal/parser"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// colorToLSP converts c to clamped sRGB channels in [0, 1].
func colorToLSP(c color.Color) protocol.Color {
	r, g, b, a := c.RGBAf()
	return protocol.Color{
		Red:   float32(r),
		Green: float32(g),
		Blue:  float32(b),
		Alpha: float32(a),
	}
}

// documentColors returns one entry per resolved color definition plus one
// per literal nested inside a larger expression.
func documentColors(result *AnalysisResult) []protocol.ColorInformation {
	if result == nil {
		return []protocol.ColorInformation{}
	}

	infos := make([]protocol.ColorInformation, 0, len(result.Colors))
	seen := make(map[protocol.Range]bool)
	for _, cl := range result.Colors {
		seen[cl.Range] = true
		infos = append(infos, protocol.ColorInformation{
			Range: cl.Range,
			Color: colorToLSP(cl.Color),
		})
	}
	for _, ref := range result.Refs {
		if ref.Kind != RefLiteral || seen[ref.Range] {
			continue
		}
		infos = append(infos, protocol.ColorInformation{
			Range: ref.Range,
			Color: colorToLSP(*ref.Color),
		})
	}
	return infos
}

// literalText writes c as an LCh literal rounded to two decimals.
func literalText(c color.Color) string {
	round := func(v float64) string {
		return color.FormatFloat(math.Round(v*100) / 100)
	}
	return "L" + round(c.L) + "C" + round(c.C) + "H" + round(c.Hue())
}

// colorPresentation offers a replacement literal for the picked color.
// Only ranges holding a plain LCh literal are rewritten; names and
// derived expressions are left alone.
func colorPresentation(content string, params *protocol.ColorPresentationParams) []protocol.ColorPresentation {
	text := extractText(content, params.Range)
	if !isLiteral(text) {
		return []protocol.ColorPresentation{}
	}

	c := color.FromRGB(
		uint8(math.Round(float64(params.Color.Red)*255)),
		uint8(math.Round(float64(params.Color.Green)*255)),
		uint8(math.Round(float64(params.Color.Blue)*255)),
	)
	lit := literalText(c)
	return []protocol.ColorPresentation{
		{
			Label: lit,
			TextEdit: &protocol.TextEdit{
				Range:   params.Range,
				NewText: lit,
			},
		},
	}
}

func isLiteral(text string) bool {
	e, err := parser.ParseExpr(text)
	if err != nil {
		return false
	}
	_, ok := e.(*parser.Literal)
	return ok
}

// extractText returns the text of a single-line range.
func extractText(content string, r protocol.Range) string {
	lines := strings.Split(content, "\n")
	if int(r.Start.Line) >= len(lines) || r.Start.Line != r.End.Line {
		return ""
	}
	line := lines[r.Start.Line]
	start := min(int(r.Start.Character), len(line))
	end := min(max(int(r.End.Character), start), len(line))
	return line[start:end]
}

// textDocumentColor handles textDocument/documentColor requests.
func (s *Server) textDocumentColor(_ *glsp.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	return documentColors(s.getResult(string(params.TextDocument.URI))), nil
}

// textDocumentColorPresentation handles textDocument/colorPresentation requests.
func (s *Server) textDocumentColorPresentation(_ *glsp.Context, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	doc, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return []protocol.ColorPresentation{}, nil
	}
	return colorPresentation(doc.Content, params), nil
}

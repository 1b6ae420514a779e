package lsp

import (
	"fmt"
	"strings"

	"github.com/jsvensson/unipalette/internal/color"
	"github.com/jsvensson/unipalette/internal/parser"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// colorMarkdown renders the hex and LCh forms of c, under a bold title
// when one is given.
func colorMarkdown(title string, c color.Color) string {
	md := fmt.Sprintf("`%s` · `%s`", c.RGBA8().Hex(), c)
	if title == "" {
		return md
	}
	return fmt.Sprintf("**%s**\n\n%s", title, md)
}

func signature(fn *parser.FuncDef) string {
	return fmt.Sprintf("fn %s(%s)", fn.Name, strings.Join(fn.Params, ", "))
}

func funcMarkdown(fn *parser.FuncDef) string {
	return "```\n" + parser.PrintItem(fn) + "\n```"
}

func symbolMarkdown(sym *Symbol) string {
	if sym.Kind == SymbolFunc {
		return funcMarkdown(sym.Func)
	}
	if sym.Color == nil {
		return fmt.Sprintf("**%s** = `%s`\n\nunresolved", sym.Name, sym.Expr)
	}
	return colorMarkdown(sym.Name, *sym.Color)
}

// hover describes the name, named color or literal under pos. Returns nil
// when there is nothing to show.
func hover(result *AnalysisResult, pos protocol.Position) *protocol.Hover {
	if result == nil {
		return nil
	}

	var md string
	var rng protocol.Range
	if sym := result.symbolAt(pos); sym != nil {
		md, rng = symbolMarkdown(sym), sym.Range
	} else if ref := result.refAt(pos); ref != nil {
		rng = ref.Range
		switch ref.Kind {
		case RefIdent, RefCall:
			sym := result.lookup(ref)
			if sym == nil {
				return nil
			}
			md = symbolMarkdown(sym)
		case RefParam:
			md = fmt.Sprintf("**%s**\n\nparameter of `%s`", ref.Name, signature(ref.Func))
		case RefNamed:
			if ref.Color == nil {
				return nil
			}
			md = colorMarkdown("$"+ref.Name, *ref.Color)
		case RefLiteral:
			md = colorMarkdown("", *ref.Color)
		}
	} else {
		return nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: md,
		},
		Range: &rng,
	}
}

// textDocumentHover handles textDocument/hover requests.
func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	return hover(s.getResult(string(params.TextDocument.URI)), params.Position), nil
}

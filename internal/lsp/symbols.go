package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// documentSymbols lists every definition in source order.
func documentSymbols(result *AnalysisResult) []protocol.DocumentSymbol {
	if result == nil {
		return []protocol.DocumentSymbol{}
	}
	out := make([]protocol.DocumentSymbol, 0, len(result.Symbols))
	for _, sym := range result.Symbols {
		ds := protocol.DocumentSymbol{
			Name:           sym.Name,
			Kind:           protocol.SymbolKindConstant,
			Range:          sym.Range,
			SelectionRange: sym.Range,
		}
		switch {
		case sym.Kind == SymbolFunc:
			ds.Kind = protocol.SymbolKindFunction
			ds.Detail = strPtr(signature(sym.Func))
		case sym.Color != nil:
			ds.Detail = strPtr(sym.Color.RGBA8().Hex())
		}
		out = append(out, ds)
	}
	return out
}

func (s *Server) textDocumentDocumentSymbol(_ *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	return documentSymbols(s.getResult(string(params.TextDocument.URI))), nil
}

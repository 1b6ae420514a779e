package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// posInRange returns true if pos is within the range [r.Start, r.End).
// The end position is exclusive.
func posInRange(pos protocol.Position, r protocol.Range) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Character < r.Start.Character {
		return false
	}
	if pos.Line == r.End.Line && pos.Character >= r.End.Character {
		return false
	}
	return true
}

// symbolAt returns the definition whose name is under pos.
func (r *AnalysisResult) symbolAt(pos protocol.Position) *Symbol {
	for _, sym := range r.Symbols {
		if posInRange(pos, sym.Range) {
			return sym
		}
	}
	return nil
}

// refAt returns the innermost reference under pos. References are recorded
// outermost first, so the last match wins.
func (r *AnalysisResult) refAt(pos protocol.Position) *Reference {
	var found *Reference
	for i := range r.Refs {
		if posInRange(pos, r.Refs[i].Range) {
			found = &r.Refs[i]
		}
	}
	return found
}

// lookup finds the definition a reference resolves to. Outside function
// bodies that is the latest definition above the reference. Function bodies
// resolve at call time and see the whole document.
func (r *AnalysisResult) lookup(ref *Reference) *Symbol {
	want := SymbolColor
	switch ref.Kind {
	case RefCall:
		want = SymbolFunc
	case RefIdent:
	default:
		return nil
	}

	line := int(ref.Range.Start.Line)
	for i := len(r.Symbols) - 1; i >= 0; i-- {
		sym := r.Symbols[i]
		if sym.Kind != want || sym.Name != ref.Name {
			continue
		}
		if ref.Func != nil || sym.Line < line {
			return sym
		}
	}
	return nil
}

// definition returns where the name under pos is defined. Parameters jump
// to the parameter list of their function.
func definition(result *AnalysisResult, uri string, pos protocol.Position) *protocol.Location {
	if result == nil {
		return nil
	}
	ref := result.refAt(pos)
	if ref == nil {
		return nil
	}

	var rng protocol.Range
	switch ref.Kind {
	case RefParam:
		for i, p := range ref.Func.Params {
			if p == ref.Name {
				rng = spanRange(int(ref.Range.Start.Line), ref.Func.ParamSpans[i])
			}
		}
	default:
		sym := result.lookup(ref)
		if sym == nil {
			return nil
		}
		rng = sym.Range
	}

	return &protocol.Location{
		URI:   protocol.DocumentUri(uri),
		Range: rng,
	}
}

// textDocumentDefinition handles textDocument/definition requests.
func (s *Server) textDocumentDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	uri := string(params.TextDocument.URI)

	result := s.getResult(uri)
	if result == nil {
		return nil, nil
	}

	return definition(result, uri, params.Position), nil
}

package lsp

import (
	"strings"

	"github.com/jsvensson/unipalette/internal/format"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// formatDocument returns a single edit replacing the whole document with
// its canonical form, or no edits when it is already formatted.
func formatDocument(content string) ([]protocol.TextEdit, error) {
	formatted, err := format.Palette(content)
	if err != nil {
		return nil, err
	}
	if formatted == content {
		return []protocol.TextEdit{}, nil
	}
	return []protocol.TextEdit{{Range: fullRange(content), NewText: formatted}}, nil
}

func fullRange(content string) protocol.Range {
	lines := strings.Split(content, "\n")
	last := len(lines) - 1
	return protocol.Range{
		End: protocol.Position{Line: uint32(last), Character: uint32(len(lines[last]))},
	}
}

// textDocumentFormatting handles textDocument/formatting requests. A
// document that does not parse is left untouched.
func (s *Server) textDocumentFormatting(_ *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}
	edits, err := formatDocument(doc.Content)
	if err != nil {
		log.Debugf("not formatting %s: %s", params.TextDocument.URI, err)
		return []protocol.TextEdit{}, nil
	}
	return edits, nil
}

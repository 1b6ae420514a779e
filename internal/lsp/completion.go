package lsp

import (
	"fmt"
	"strings"

	"github.com/jsvensson/unipalette/internal/color"
	"github.com/jsvensson/unipalette/internal/parser"
	"github.com/sahilm/fuzzy"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// wordBefore returns the name being typed just before the cursor. A
// leading '$' is kept so named colors can be told apart.
func wordBefore(text string) string {
	start := len(text)
	for start > 0 && isNameByte(text[start-1]) {
		start--
	}
	if start > 0 && text[start-1] == '$' {
		start--
	}
	return text[start:]
}

func isNameByte(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '_' || b == '-'
}

// rank fuzzy-filters candidates by word, best match first. An empty word
// keeps every candidate in its original order.
func rank(word string, candidates []string) fuzzy.Matches {
	if word == "" {
		matches := make(fuzzy.Matches, len(candidates))
		for i, c := range candidates {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}
		return matches
	}
	return fuzzy.Find(word, candidates)
}

// complete produces completion items for the cursor position. Left of '='
// only the fn keyword is offered. Right of it come parameters of the
// function being defined and palette names, or named colors after '$'.
// Outside function bodies only names defined above the cursor are visible.
func complete(result *AnalysisResult, content string, pos protocol.Position) []protocol.CompletionItem {
	lines := strings.Split(content, "\n")
	if int(pos.Line) >= len(lines) {
		return nil
	}
	line := lines[pos.Line]
	before := line[:min(int(pos.Character), len(line))]

	if !strings.Contains(before, "=") {
		if strings.HasPrefix("fn", strings.TrimSpace(before)) {
			return []protocol.CompletionItem{keywordItem()}
		}
		return nil
	}

	word := wordBefore(before)
	if name, ok := strings.CutPrefix(word, "$"); ok {
		return namedColorItems(name)
	}
	if result == nil {
		return nil
	}

	var items []protocol.CompletionItem
	var labels []string
	add := func(item protocol.CompletionItem) {
		items = append(items, item)
		labels = append(labels, item.Label)
	}

	fn := funcHeader(line)
	if fn != nil {
		for _, p := range fn.Params {
			add(protocol.CompletionItem{
				Label:  p,
				Kind:   completionKindPtr(protocol.CompletionItemKindVariable),
				Detail: strPtr("parameter of " + signature(fn)),
			})
		}
	}

	visible := make(map[string]*Symbol)
	var names []string
	for _, sym := range result.Symbols {
		if fn == nil && sym.Line >= int(pos.Line) {
			continue
		}
		if _, ok := visible[sym.Name]; !ok {
			names = append(names, sym.Name)
		}
		visible[sym.Name] = sym
	}
	for _, name := range names {
		add(symbolItem(visible[name]))
	}

	out := make([]protocol.CompletionItem, 0, len(items))
	for _, m := range rank(word, labels) {
		out = append(out, items[m.Index])
	}
	return out
}

// funcHeader parses the "fn name(a, b) =" part of line, ignoring the body
// which is usually incomplete while typing.
func funcHeader(line string) *parser.FuncDef {
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return nil
	}
	item, err := parser.ParseLine(0, line[:eq+1]+" x")
	if err != nil {
		return nil
	}
	fn, _ := item.(*parser.FuncDef)
	return fn
}

func symbolItem(sym *Symbol) protocol.CompletionItem {
	if sym.Kind == SymbolFunc {
		placeholders := make([]string, len(sym.Func.Params))
		for i, p := range sym.Func.Params {
			placeholders[i] = fmt.Sprintf("${%d:%s}", i+1, p)
		}
		snippet := sym.Name + "(" + strings.Join(placeholders, ", ") + ")"
		format := protocol.InsertTextFormatSnippet
		return protocol.CompletionItem{
			Label:            sym.Name,
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           strPtr(signature(sym.Func)),
			InsertText:       &snippet,
			InsertTextFormat: &format,
		}
	}

	item := protocol.CompletionItem{
		Label: sym.Name,
		Kind:  completionKindPtr(protocol.CompletionItemKindColor),
	}
	if sym.Color != nil {
		item.Detail = strPtr(sym.Color.RGBA8().Hex())
	}
	return item
}

func namedColorItems(word string) []protocol.CompletionItem {
	names := color.Names()
	var items []protocol.CompletionItem
	for _, m := range rank(word, names) {
		c, _ := color.Named(m.Str)
		items = append(items, protocol.CompletionItem{
			Label:  m.Str,
			Kind:   completionKindPtr(protocol.CompletionItemKindColor),
			Detail: strPtr(c.RGBA8().Hex()),
		})
	}
	return items
}

func keywordItem() protocol.CompletionItem {
	snippet := "fn ${1:name}(${2:c}) = $0"
	format := protocol.InsertTextFormatSnippet
	return protocol.CompletionItem{
		Label:            "fn",
		Kind:             completionKindPtr(protocol.CompletionItemKindKeyword),
		Detail:           strPtr("function definition"),
		InsertText:       &snippet,
		InsertTextFormat: &format,
	}
}

// completionKindPtr returns a pointer to a CompletionItemKind.
func completionKindPtr(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}

// textDocumentCompletion is the LSP handler for textDocument/completion requests.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	doc, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}
	return complete(doc.Result, doc.Content, params.Position), nil
}

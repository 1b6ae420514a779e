package lsp

import "sync"

// Document is an open palette file together with its latest analysis.
type Document struct {
	Content string
	Result  *AnalysisResult
}

// DocumentStore holds open documents keyed by URI. Content is analyzed on
// every write so readers always see a result that matches the text.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*Document)}
}

// Set stores content for uri and returns the fresh analysis.
func (s *DocumentStore) Set(uri, content string) *AnalysisResult {
	doc := &Document{Content: content, Result: Analyze(content)}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = doc
	return doc.Result
}

func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

func (s *DocumentStore) Get(uri string) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return doc, ok
}

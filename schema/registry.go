package schema

import (
	"fmt"
	"sync"
)

// DocumentSet holds the documents of one resolver run, keyed by document
// ID. Insertion order is kept so that graph construction and combining
// visit documents deterministically.
type DocumentSet struct {
	mu sync.RWMutex

	docs map[string]*Document
	ids  []string
}

func NewDocumentSet() *DocumentSet {
	return &DocumentSet{
		docs: make(map[string]*Document),
	}
}

// Add registers a document. Document IDs are unique within one set.
func (s *DocumentSet) Add(doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc == nil || doc.ID == "" {
		return fmt.Errorf("document must have an id")
	}
	if _, exists := s.docs[doc.ID]; exists {
		return fmt.Errorf("document %q already registered", doc.ID)
	}
	s.docs[doc.ID] = doc
	s.ids = append(s.ids, doc.ID)
	return nil
}

// Get returns the document with the given ID.
func (s *DocumentSet) Get(id string) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, exists := s.docs[id]
	return doc, exists
}

// IDs returns document IDs in insertion order.
func (s *DocumentSet) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]string, len(s.ids))
	copy(res, s.ids)
	return res
}

// Documents returns all documents in insertion order.
func (s *DocumentSet) Documents() []*Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]*Document, 0, len(s.ids))
	for _, id := range s.ids {
		res = append(res, s.docs[id])
	}
	return res
}

func (s *DocumentSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

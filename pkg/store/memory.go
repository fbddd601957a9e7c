package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/praetorian-inc/formulaview/pkg/types"
)

// MemoryStore implements Store using an in-memory map.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[types.DocumentID]*types.DocumentCache
}

// NewMemory creates a new in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		docs: make(map[types.DocumentID]*types.DocumentCache),
	}
}

// Put replaces the cache entry for doc.ID.
func (m *MemoryStore) Put(doc *types.DocumentCache) error {
	if doc == nil {
		return fmt.Errorf("put: nil document")
	}
	entry := clone(doc)

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.docs[doc.ID]; ok && existing.Version > doc.Version {
		return fmt.Errorf("%s version %d, have %d: %w", doc.ID, doc.Version, existing.Version, ErrStaleVersion)
	}
	m.docs[doc.ID] = entry
	return nil
}

// Get returns a copy of the cache entry for id.
func (m *MemoryStore) Get(id types.DocumentID) (*types.DocumentCache, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	// Return a copy to avoid external modifications
	return clone(doc), nil
}

// Delete removes the entry for id.
func (m *MemoryStore) Delete(id types.DocumentID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.docs, id)
	return nil
}

// IDs returns the stored document IDs in sorted order.
func (m *MemoryStore) IDs() ([]types.DocumentID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]types.DocumentID, 0, len(m.docs))
	for id := range m.docs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Len returns the number of stored documents.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.docs)
}

// Close drops every entry.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.docs = make(map[types.DocumentID]*types.DocumentCache)
	return nil
}

func clone(doc *types.DocumentCache) *types.DocumentCache {
	c := *doc
	c.Spans = append([]types.FormulaSpan(nil), doc.Spans...)
	c.Directives = doc.Directives.Clone()
	return &c
}

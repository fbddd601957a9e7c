package store

import (
	"errors"
	"fmt"

	"github.com/praetorian-inc/formulaview/pkg/types"
)

var (
	// ErrNotFound is returned when no document is stored under an ID.
	ErrNotFound = errors.New("document not found")
	// ErrStaleVersion is returned by Put when a newer version is already stored.
	ErrStaleVersion = errors.New("stale document version")
	// ErrUnknownBackend is returned by New for an unsupported backend.
	ErrUnknownBackend = errors.New("unknown store backend")
)

// Store holds the per-document scan cache.
// Entries are replaced wholesale on every recompute; there is no partial
// update.
type Store interface {
	// Put replaces the cache entry for doc.ID. It fails with ErrStaleVersion
	// if the stored entry has a higher version.
	Put(doc *types.DocumentCache) error

	// Get returns the cache entry for id, or ErrNotFound.
	Get(id types.DocumentID) (*types.DocumentCache, error)

	// Delete removes the entry for id. Deleting a missing entry is not an
	// error.
	Delete(id types.DocumentID) error

	// IDs returns the stored document IDs in sorted order.
	IDs() ([]types.DocumentID, error)

	// Len returns the number of stored documents.
	Len() int

	// Close releases the store.
	Close() error
}

// BackendMemory is the in-process backend.
const BackendMemory = "memory"

// Config for store initialization.
type Config struct {
	// Backend selects the implementation. Empty means BackendMemory.
	Backend string
}

// New creates a new Store.
// Only the memory backend is available; caches are not kept across sessions.
func New(cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

package preview

import (
	"errors"
	"fmt"

	"github.com/praetorian-inc/formulaview/pkg/store"
	"github.com/praetorian-inc/formulaview/pkg/types"
)

// OnOpen scans a newly opened document and caches the result.
func (e *Engine) OnOpen(id types.DocumentID, version int, text string) (*types.DocumentCache, error) {
	e.logger.Log("open %s v%d (%d bytes)", id, version, len(text))
	return e.refresh(id, version, text)
}

// OnChange rescans a document and replaces its cache entry. A version older
// than the cached one is discarded with store.ErrStaleVersion.
func (e *Engine) OnChange(id types.DocumentID, version int, text string) (*types.DocumentCache, error) {
	e.logger.Log("change %s v%d (%d bytes)", id, version, len(text))
	return e.refresh(id, version, text)
}

// OnClose drops the cache entry of a document.
func (e *Engine) OnClose(id types.DocumentID) error {
	e.logger.Log("close %s", id)
	return e.store.Delete(id)
}

// Document returns the cache entry of an open document.
func (e *Engine) Document(id types.DocumentID) (*types.DocumentCache, error) {
	return e.store.Get(id)
}

// Documents returns the IDs of the open documents.
func (e *Engine) Documents() ([]types.DocumentID, error) {
	return e.store.IDs()
}

func (e *Engine) refresh(id types.DocumentID, version int, text string) (*types.DocumentCache, error) {
	doc := &types.DocumentCache{
		ID:        id,
		Version:   version,
		ContentID: types.ComputeContentID([]byte(text)),
		Text:      text,
	}

	prev, err := e.store.Get(id)
	switch {
	case err == nil && prev.ContentID == doc.ContentID:
		e.logger.Log("%s v%d unchanged, reusing %d spans", id, version, len(prev.Spans))
		doc.Spans = prev.Spans
		doc.Directives = prev.Directives
	case err == nil || errors.Is(err, store.ErrNotFound):
		doc.Spans = e.Locate(text)
		doc.Directives = e.Directives(text)
	default:
		return nil, fmt.Errorf("loading %s: %w", id, err)
	}

	if err := e.store.Put(doc); err != nil {
		e.logger.Log("discarding %s v%d: %v", id, version, err)
		return nil, err
	}
	e.logger.Log("cached %s v%d: %d spans, %d directives", id, version, len(doc.Spans), len(doc.Directives))
	return doc, nil
}

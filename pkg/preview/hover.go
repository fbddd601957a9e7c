package preview

import "github.com/praetorian-inc/formulaview/pkg/types"

// Hover returns the preview of the formula span containing offset in an open
// document. ok is false when the document is not open or no span contains
// offset.
func (e *Engine) Hover(id types.DocumentID, offset int64) (hover *FormulaPreview, ok bool) {
	doc, err := e.store.Get(id)
	if err != nil {
		e.logger.Log("hover %s@%d: %v", id, offset, err)
		return nil, false
	}
	span, ok := doc.SpanAt(offset)
	if !ok {
		return nil, false
	}
	fp := e.previewSpan(doc.Text, span, doc.Directives)
	return &fp, true
}

// HoverAt is Hover with a 1-based line and column.
func (e *Engine) HoverAt(id types.DocumentID, line, column int) (*FormulaPreview, bool) {
	doc, err := e.store.Get(id)
	if err != nil {
		e.logger.Log("hover %s@%d:%d: %v", id, line, column, err)
		return nil, false
	}
	offset := types.ComputeOffset([]byte(doc.Text), line, column)
	return e.Hover(id, int64(offset))
}

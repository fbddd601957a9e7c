package types

// DocumentID identifies an open document, typically its URI.
type DocumentID string

// DocumentCache is the scan result for one document snapshot. It is built
// once per snapshot and replaced wholesale, never patched.
type DocumentCache struct {
	ID         DocumentID    `json:"id"`
	Version    int           `json:"version"`
	ContentID  ContentID     `json:"content_id"`
	Text       string        `json:"-"`
	Spans      []FormulaSpan `json:"spans"`
	Directives Directives    `json:"directives"`
}

// SpanAt returns the first span containing offset.
func (c *DocumentCache) SpanAt(offset int64) (FormulaSpan, bool) {
	if c == nil {
		return FormulaSpan{}, false
	}
	for _, s := range c.Spans {
		if s.Contains(offset) {
			return s, true
		}
	}
	return FormulaSpan{}, false
}

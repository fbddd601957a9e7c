package preview

import "github.com/praetorian-inc/formulaview/pkg/types"

// DebugLogger provides platform-specific logging
type DebugLogger interface {
	Log(format string, args ...interface{})
}

// NoopLogger is a no-op logger
type NoopLogger struct{}

func (NoopLogger) Log(format string, args ...interface{}) {}

// Preview is the outcome of rendering one expression.
type Preview struct {
	Expression string   `json:"expression"`
	Canonical  string   `json:"canonical,omitempty"`
	Variables  []string `json:"variables"`
	// Text is the display text: a table, or a message when no table can be
	// drawn.
	Text string `json:"text"`
	// Failed counts cells that show the placeholder.
	Failed    int      `json:"failed"`
	Truncated []string `json:"truncated,omitempty"`
}

// FormulaPreview is the preview of one formula span in a document.
type FormulaPreview struct {
	Span       types.FormulaSpan `json:"span"`
	Location   types.Location    `json:"location"`
	Expression string            `json:"expression"`
	Preview    *Preview          `json:"preview"`
}

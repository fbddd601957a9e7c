package serve

import (
	"encoding/json"

	"github.com/praetorian-inc/formulaview/pkg/preview"
	"github.com/praetorian-inc/formulaview/pkg/types"
)

// Request represents an incoming NDJSON request
type Request struct {
	Type    string          `json:"type"` // "open" | "change" | "close" | "spans" | "hover" | "preview" | "shutdown"
	Payload json.RawMessage `json:"payload"`
}

// DocumentPayload is the payload for "open" and "change" requests
type DocumentPayload struct {
	URI     string `json:"uri"`
	Version int    `json:"version"`
	Text    string `json:"text"`
}

// URIPayload is the payload for "close" and "spans" requests
type URIPayload struct {
	URI string `json:"uri"`
}

// HoverPayload is the payload for "hover" requests. Offset is a byte
// offset; when it is absent Line and Column (1-based) are used.
type HoverPayload struct {
	URI    string `json:"uri"`
	Offset *int64 `json:"offset,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// PreviewPayload is the payload for "preview" requests. Directives are
// taken from Text when Directives is empty.
type PreviewPayload struct {
	Expression string           `json:"expression"`
	Directives types.Directives `json:"directives,omitempty"`
	Text       string           `json:"text,omitempty"`
}

// Response represents an outgoing NDJSON response
type Response struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"` // request type, "ready" or "decode"
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReadyData is the data field for "ready" responses
type ReadyData struct {
	Version string `json:"version"`
	Marker  string `json:"marker"`
}

// SpanInfo describes one formula span of a document
type SpanInfo struct {
	Location   types.Location `json:"location"`
	Expression string         `json:"expression"`
}

// DocumentData is the data field for "open", "change" and "spans" responses
type DocumentData struct {
	URI        string           `json:"uri"`
	Version    int              `json:"version"`
	Spans      []SpanInfo       `json:"spans"`
	Directives types.Directives `json:"directives"`
}

// HoverData is the data field for "hover" responses
type HoverData struct {
	Found   bool                    `json:"found"`
	Preview *preview.FormulaPreview `json:"preview,omitempty"`
}

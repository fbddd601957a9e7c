package types

// OffsetSpan is byte range [Start, End) - half-open interval.
type OffsetSpan struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Len returns the number of bytes covered by the span.
func (s OffsetSpan) Len() int64 {
	return s.End - s.Start
}

// Contains reports whether offset falls inside the span. Both ends are
// inclusive so that a cursor resting on the closing delimiter still hits.
func (s OffsetSpan) Contains(offset int64) bool {
	return offset >= s.Start && offset <= s.End
}

// Text returns the slice of content covered by the span, or "" if the span
// does not fit content.
func (s OffsetSpan) Text(content string) string {
	if s.Start < 0 || s.End < s.Start || s.End > int64(len(content)) {
		return ""
	}
	return content[s.Start:s.End]
}

// SourcePoint is line:column position (1-based).
type SourcePoint struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// SourceSpan is start-end line:column range.
type SourceSpan struct {
	Start SourcePoint `json:"start"`
	End   SourcePoint `json:"end"`
}

// Location combines byte offsets and source positions.
type Location struct {
	Offset OffsetSpan `json:"offset"`
	Source SourceSpan `json:"source"`
}

// NewLocation builds a Location for span, computing line:column positions
// from content.
func NewLocation(content string, span OffsetSpan) Location {
	startLine, startCol := ComputeLineColumn([]byte(content), int(span.Start))
	endLine, endCol := ComputeLineColumn([]byte(content), int(span.End))
	return Location{
		Offset: span,
		Source: SourceSpan{
			Start: SourcePoint{Line: startLine, Column: startCol},
			End:   SourcePoint{Line: endLine, Column: endCol},
		},
	}
}

// Package locator finds formula call sites in raw document text.
package locator

import (
	"errors"
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/praetorian-inc/formulaview/pkg/prefilter"
	"github.com/praetorian-inc/formulaview/pkg/types"
)

// DefaultMarker is the call name that introduces a formula.
const DefaultMarker = "formula"

// ErrEmptyMarker is returned by New when the marker is empty.
var ErrEmptyMarker = errors.New("locator: marker must not be empty")

// Locator finds balanced-parenthesis argument spans following a marker token.
type Locator struct {
	marker    string
	re        *regexp2.Regexp
	prefilter *prefilter.Prefilter
}

// New compiles a locator for marker. The marker is matched as a whole word
// immediately followed by an opening parenthesis.
func New(marker string) (*Locator, error) {
	if marker == "" {
		return nil, ErrEmptyMarker
	}

	re, err := regexp2.Compile(`\b`+regexp2.Escape(marker)+`\(`, regexp2.ECMAScript)
	if err != nil {
		return nil, fmt.Errorf("compiling marker pattern for %q: %w", marker, err)
	}
	// Set timeout to prevent catastrophic backtracking
	re.MatchTimeout = 5 * time.Second

	return &Locator{
		marker: marker,
		re:     re,
		prefilter: prefilter.New([]prefilter.Stage{
			{Name: "spans", Keywords: []string{marker + "("}},
		}),
	}, nil
}

// Marker returns the marker token the locator searches for.
func (l *Locator) Marker() string {
	return l.marker
}

// Locate returns every formula span in text, in document order. Matches
// whose parentheses never balance are dropped, as are matches whose closing
// parenthesis is immediately followed by a colon. Spans of formulas nested
// inside another formula's arguments are reported too.
func (l *Locator) Locate(text string) []types.FormulaSpan {
	spans := []types.FormulaSpan{}
	if !l.prefilter.Needs([]byte(text), "spans") {
		return spans
	}

	// regexp2 reports rune indices; map them back to byte offsets.
	offsets := types.RuneByteOffsets(text)

	match, err := l.re.FindStringMatch(text)
	for err == nil && match != nil {
		open := types.ByteOffset(offsets, match.Index+match.Length)
		if end, ok := balance(text, open); ok {
			if end+1 >= len(text) || text[end+1] != ':' {
				spans = append(spans, types.FormulaSpan{Start: int64(open), End: int64(end)})
			}
		}
		match, err = l.re.FindNextMatch(match)
	}

	return spans
}

// balance walks forward from start (the byte after an opening parenthesis)
// and returns the offset of the parenthesis that closes it.
func balance(text string, start int) (int, bool) {
	depth := 1
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

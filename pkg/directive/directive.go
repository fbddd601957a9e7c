// Package directive parses comment-encoded range directives of the form
//
//	# n = range(start, end[, step])
//
// Directives apply document-wide by variable name. A directive with a
// malformed number is skipped on its own; it never fails the whole parse.
package directive

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/praetorian-inc/formulaview/pkg/prefilter"
	"github.com/praetorian-inc/formulaview/pkg/types"
)

// DefaultPrefixes are the comment prefixes recognised when none are configured.
var DefaultPrefixes = []string{"#", "//"}

// ErrNoPrefixes is returned by NewParser when no usable prefix is given.
var ErrNoPrefixes = errors.New("directive: at least one comment prefix is required")

// ErrMalformedNumber marks a directive whose start, end or step is not an integer.
var ErrMalformedNumber = errors.New("malformed integer literal")

// Skipped describes a directive line that matched the directive shape but
// could not be used.
type Skipped struct {
	Variable string         `json:"variable"`
	Text     string         `json:"text"`
	Location types.Location `json:"location"`
	Err      error          `json:"-"`
}

// Result holds the outcome of scanning one document.
type Result struct {
	Directives types.Directives
	Skipped    []Skipped
}

// Parser scans text for range directives.
type Parser struct {
	re        *regexp2.Regexp
	prefilter *prefilter.Prefilter
}

// NewParser compiles a parser recognising directives behind any of prefixes.
func NewParser(prefixes []string) (*Parser, error) {
	var alts []string
	for _, p := range prefixes {
		if p = strings.TrimSpace(p); p != "" {
			alts = append(alts, regexp2.Escape(p))
		}
	}
	if len(alts) == 0 {
		return nil, ErrNoPrefixes
	}

	pattern := `^[ \t]*(?:` + strings.Join(alts, "|") + `)[ \t]*` +
		`(?<name>[A-Za-z_][\w.\[\]]*)[ \t]*=[ \t]*range[ \t]*\(` +
		`[ \t]*(?<start>[^,()\r\n]*?)[ \t]*,` +
		`[ \t]*(?<end>[^,()\r\n]*?)[ \t]*` +
		`(?:,[ \t]*(?<step>[^,()\r\n]*?)[ \t]*)?\)`

	re, err := regexp2.Compile(pattern, regexp2.Multiline)
	if err != nil {
		return nil, fmt.Errorf("compiling directive pattern: %w", err)
	}
	re.MatchTimeout = 5 * time.Second

	return &Parser{
		re: re,
		prefilter: prefilter.New([]prefilter.Stage{
			{Name: "directives", Keywords: []string{"range"}},
		}),
	}, nil
}

// Parse returns the directives in text keyed by variable name. When a name
// is declared more than once the last declaration wins.
func (p *Parser) Parse(text string) types.Directives {
	return p.ParseDetailed(text).Directives
}

// ParseDetailed is Parse plus the list of skipped directive lines.
func (p *Parser) ParseDetailed(text string) *Result {
	result := &Result{Directives: make(types.Directives)}
	if !p.prefilter.Needs([]byte(text), "directives") {
		return result
	}

	offsets := types.RuneByteOffsets(text)

	match, err := p.re.FindStringMatch(text)
	for err == nil && match != nil {
		name := match.GroupByName("name")
		start := types.ByteOffset(offsets, name.Index)
		end := types.ByteOffset(offsets, match.Index+match.Length)
		loc := types.NewLocation(text, types.OffsetSpan{Start: int64(start), End: int64(end)})

		d, perr := build(name.String(), match)
		if perr != nil {
			result.Skipped = append(result.Skipped, Skipped{
				Variable: name.String(),
				Text:     text[start:end],
				Location: loc,
				Err:      perr,
			})
		} else {
			d.Location = loc
			result.Directives[d.Variable] = d
		}

		match, err = p.re.FindNextMatch(match)
	}

	return result
}

func build(name string, match *regexp2.Match) (types.RangeDirective, error) {
	d := types.RangeDirective{Variable: name, Step: 1}

	var err error
	if d.Start, err = parseInt(match, "start"); err != nil {
		return d, err
	}
	if d.End, err = parseInt(match, "end"); err != nil {
		return d, err
	}
	if step := match.GroupByName("step"); step != nil && len(step.Captures) > 0 {
		if d.Step, err = parseInt(match, "step"); err != nil {
			return d, err
		}
	}
	return d, nil
}

func parseInt(match *regexp2.Match, group string) (int64, error) {
	var raw string
	if g := match.GroupByName(group); g != nil {
		raw = strings.TrimSpace(g.String())
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", group, raw, ErrMalformedNumber)
	}
	return v, nil
}

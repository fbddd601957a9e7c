package variables

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTooManyVariables is returned when more than two variables are rewritten.
	ErrTooManyVariables = errors.New("at most 2 variables are supported")
	// ErrUnknownMode is returned for an unrecognised rewrite mode.
	ErrUnknownMode = errors.New("unknown rewrite mode")
)

// Mode selects how variables are substituted.
type Mode int

const (
	// ModeToken replaces whole variable tokens only.
	ModeToken Mode = iota
	// ModeLiteral replaces every literal occurrence of each variable name,
	// substrings of longer names included.
	ModeLiteral
)

func (m Mode) String() string {
	switch m {
	case ModeToken:
		return "token"
	case ModeLiteral:
		return "literal"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "token" or "literal". The empty string means ModeToken.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "token":
		return ModeToken, nil
	case "literal":
		return ModeLiteral, nil
	default:
		return ModeToken, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

package enum

import (
	"context"

	"github.com/praetorian-inc/formulaview/pkg/types"
)

// Document is one text file found by an Enumerator.
type Document struct {
	// Path is the file path, rooted at Config.Root.
	Path      string
	Content   []byte
	ContentID types.ContentID
}

// Enumerator discovers documents to preview.
type Enumerator interface {
	// Enumerate yields documents from the source, one callback at a time.
	Enumerate(ctx context.Context, callback func(doc Document) error) error
}

// Config for enumeration.
type Config struct {
	// Root is the starting path for enumeration. It may also be a single file.
	Root string

	// Extensions limits enumeration to these file extensions (".py").
	// Matching is case-insensitive. Empty means every file.
	Extensions []string

	// IncludeHidden includes hidden files/directories (starting with .).
	IncludeHidden bool

	// MaxFileSize is the maximum file size to process (0 = no limit).
	MaxFileSize int64

	// FollowSymlinks follows symbolic links.
	FollowSymlinks bool

	// Readers is the number of files read concurrently (0 = one per CPU).
	Readers int
}

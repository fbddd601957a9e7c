package enum

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"

	"github.com/praetorian-inc/formulaview/pkg/types"
)

// FilesystemEnumerator enumerates files from a filesystem directory.
type FilesystemEnumerator struct {
	config Config
}

// NewFilesystemEnumerator creates a new filesystem enumerator.
func NewFilesystemEnumerator(config Config) *FilesystemEnumerator {
	return &FilesystemEnumerator{config: config}
}

// readResult is the outcome of reading one file.
type readResult struct {
	doc  Document
	skip bool
	err  error
}

// readJob pairs a path with the slot its result is delivered to.
type readJob struct {
	path   string
	result chan readResult
}

// Enumerate walks the filesystem and yields text files.
// Phase 1: Walk directory tree and collect eligible file paths (fast, sequential).
// Phase 2: Read files in parallel and invoke callback from a single goroutine,
// in walk order.
func (e *FilesystemEnumerator) Enumerate(ctx context.Context, callback func(doc Document) error) error {
	files, err := e.walk(ctx)
	if err != nil {
		return err
	}

	numReaders := e.config.Readers
	if numReaders < 1 {
		numReaders = runtime.NumCPU()
	}
	if numReaders < 1 {
		numReaders = 1
	}

	origCtx := ctx
	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan readJob, numReaders*2)
	pending := make(chan chan readResult, numReaders*2)

	// Feed paths to readers, and result slots to the consumer in the same order
	g.Go(func() error {
		defer close(jobs)
		defer close(pending)
		for _, path := range files {
			job := readJob{path: path, result: make(chan readResult, 1)}
			select {
			case jobs <- job:
			case <-ctx.Done():
				return ctx.Err()
			}
			select {
			case pending <- job.result:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	// Parallel readers
	for i := 0; i < numReaders; i++ {
		g.Go(func() error {
			for job := range jobs {
				doc, skip, err := e.readFile(ctx, job.path)
				job.result <- readResult{doc: doc, skip: skip, err: err}
			}
			return nil
		})
	}

	// Single consumer
	g.Go(func() error {
		for slot := range pending {
			r := <-slot
			if r.err != nil {
				return r.err
			}
			if r.skip {
				continue
			}
			if err := callback(r.doc); err != nil {
				return err
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	// If the caller's context was cancelled but all goroutines finished
	// before noticing, propagate the cancellation.
	if origCtx.Err() != nil {
		return origCtx.Err()
	}
	return nil
}

// walk collects eligible file paths in lexical order.
func (e *FilesystemEnumerator) walk(ctx context.Context) ([]string, error) {
	// Load .gitignore patterns if present
	var ignore *gitignore.GitIgnore
	gitignorePath := filepath.Join(e.config.Root, ".gitignore")
	if _, err := os.Stat(gitignorePath); err == nil {
		ignore, _ = gitignore.CompileIgnoreFile(gitignorePath)
	}

	var files []string
	err := filepath.Walk(e.config.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if info.IsDir() {
			if path != e.config.Root && !e.config.IncludeHidden && isHidden(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if info.Mode()&os.ModeSymlink != 0 && !e.config.FollowSymlinks {
			return nil
		}

		if !e.config.IncludeHidden && isHidden(info.Name()) {
			return nil
		}

		// An explicitly named file is taken regardless of extension
		if path != e.config.Root && !e.matchesExtension(path) {
			return nil
		}

		if e.config.MaxFileSize > 0 && info.Size() > e.config.MaxFileSize {
			return nil
		}

		if ignore != nil {
			relPath, err := filepath.Rel(e.config.Root, path)
			if err != nil {
				return err
			}
			if ignore.MatchesPath(relPath) {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// readFile reads a single file. Binary files are skipped.
func (e *FilesystemEnumerator) readFile(ctx context.Context, path string) (Document, bool, error) {
	select {
	case <-ctx.Done():
		return Document{}, false, ctx.Err()
	default:
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Document{}, false, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	if isBinary(content) {
		return Document{}, true, nil
	}

	return Document{
		Path:      path,
		Content:   content,
		ContentID: types.ComputeContentID(content),
	}, false, nil
}

func (e *FilesystemEnumerator) matchesExtension(path string) bool {
	if len(e.config.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range e.config.Extensions {
		want = strings.ToLower(strings.TrimSpace(want))
		if !strings.HasPrefix(want, ".") {
			want = "." + want
		}
		if ext == want {
			return true
		}
	}
	return false
}

// isHidden checks if a filename is hidden (starts with .).
// The special entries "." and ".." are NOT considered hidden.
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return strings.HasPrefix(name, ".")
}

// isBinary detects if content is binary by checking first 8KB for null bytes.
func isBinary(content []byte) bool {
	checkSize := len(content)
	if checkSize > 8192 {
		checkSize = 8192
	}
	return bytes.IndexByte(content[:checkSize], 0) != -1
}

// Package adapter contains infrastructure adapters for the mockguard CLI.
package adapter

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	m "mockguard.dev/pkg/mockguard/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning user projects. It hides direct `os` access so the
// discovery and verification logic can be tested without touching the disk.
type SourceFSAdapter interface {
	// Walk traverses root depth-first in lexical order. Directories for which
	// prune returns true are skipped along with everything below them; the
	// root itself is never pruned.
	Walk(ctx context.Context, root m.Path, prune PruneFunc, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents as UTF-8.
	ReadFile(path m.Path) ([]byte, error)

	// FileInfo returns metadata for a path so the domain can check existence or
	// distinguish between files and directories.
	FileInfo(path m.Path) (os.FileInfo, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.WalkDir. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path m.Path, entry fs.DirEntry, err error) error

// PruneFunc decides from a directory's base name whether to skip it.
type PruneFunc func(name string) bool

// LocalSourceFSAdapter implements SourceFSAdapter on the local disk.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Walk iterates over entries under root, pruning directories rejected by prune.
func (a *LocalSourceFSAdapter) Walk(ctx context.Context, root m.Path, prune PruneFunc, fn FilepathWalkFunc) error {
	rootStr := filepath.Clean(string(root))

	return filepath.WalkDir(rootStr, func(path string, entry fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			return fn(m.Path(path), entry, err)
		}

		if entry.IsDir() && path != rootStr && prune != nil && prune(entry.Name()) {
			return filepath.SkipDir
		}

		return fn(m.Path(path), entry, nil)
	})
}

// ReadFile loads file contents from disk. A leading byte order mark is
// dropped and UTF-16 content is converted to UTF-8.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	raw, err := os.ReadFile(string(path))
	if err != nil {
		return nil, err
	}

	content, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return content, nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

package domain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"path/filepath"
	"strings"

	"mockguard.dev/pkg/mockguard/internal/adapter"
	m "mockguard.dev/pkg/mockguard/internal/model"
)

// Markers that turn a file into a test file, checked in this order.
const (
	TestMarker = ".test"
	SpecMarker = ".spec"
)

var testMarkers = []string{TestMarker, SpecMarker}

// DefaultIgnoreDirs are directory names never descended into during a scan.
var DefaultIgnoreDirs = []string{"node_modules", "build", "__snapshots__"}

// Discovery finds test files and pairs them with their module under test.
type Discovery interface {
	// Pairs lazily walks root and yields every test file whose module under
	// test exists. Test files without a module are dropped silently.
	Pairs(ctx context.Context, root m.Path) iter.Seq2[m.TestFilePair, error]
	// Discover collects Pairs into a slice. It fails with NoPairsFound when
	// the scan yields nothing.
	Discover(ctx context.Context, root m.Path) ([]m.TestFilePair, error)
	// PairFor resolves a single, explicitly requested test file.
	PairFor(path m.Path) (m.TestFilePair, error)
	// Ignored reports whether directories named name are skipped.
	Ignored(name string) bool
}

type discovery struct {
	adapter.SourceFSAdapter
	ignore map[string]struct{}
}

// NewDiscovery creates a Discovery that prunes DefaultIgnoreDirs plus any extra names.
func NewDiscovery(fsAdapter adapter.SourceFSAdapter, extraIgnoreDirs ...string) Discovery {
	ignore := make(map[string]struct{}, len(DefaultIgnoreDirs)+len(extraIgnoreDirs))
	for _, name := range DefaultIgnoreDirs {
		ignore[name] = struct{}{}
	}

	for _, name := range extraIgnoreDirs {
		if name = strings.TrimSpace(name); name != "" {
			ignore[name] = struct{}{}
		}
	}

	return &discovery{SourceFSAdapter: fsAdapter, ignore: ignore}
}

// ModulePathFor derives the module under test from a test file path by removing
// the first occurrence of the matched marker from the base name. It returns
// false when the name carries no marker.
func ModulePathFor(test m.Path) (m.Path, bool) {
	testPath := string(test)
	name := filepath.Base(testPath)

	for _, marker := range testMarkers {
		if !strings.Contains(name, marker) {
			continue
		}

		dir := strings.TrimSuffix(testPath, name)

		return m.Path(dir + strings.Replace(name, marker, "", 1)), true
	}

	return "", false
}

// IsTestFile reports whether the base name of path carries a test marker.
func IsTestFile(path m.Path) bool {
	_, ok := ModulePathFor(path)
	return ok
}

func (d *discovery) Pairs(ctx context.Context, root m.Path) iter.Seq2[m.TestFilePair, error] {
	return func(yield func(m.TestFilePair, error) bool) {
		rootPath := m.Path(filepath.Clean(string(root)))
		stopped := false

		err := d.Walk(ctx, root, d.Ignored, func(path m.Path, entry fs.DirEntry, err error) error {
			if err != nil {
				if path == rootPath {
					return err
				}

				slog.Warn("Skipping unreadable path", "path", path, "error", err)

				return nil
			}

			if entry.IsDir() {
				return nil
			}

			pair, ok := d.resolve(path)
			if !ok {
				return nil
			}

			if !yield(pair, nil) {
				stopped = true
				return filepath.SkipAll
			}

			return nil
		})
		if err != nil && !stopped {
			yield(m.TestFilePair{}, fmt.Errorf("walk %s: %w", root, err))
		}
	}
}

func (d *discovery) Discover(ctx context.Context, root m.Path) ([]m.TestFilePair, error) {
	var pairs []m.TestFilePair

	for pair, err := range d.Pairs(ctx, root) {
		if err != nil {
			return nil, err
		}

		pairs = append(pairs, pair)
	}

	if len(pairs) == 0 {
		return nil, m.NewNoPairsFoundError(root)
	}

	slog.Debug("Discovered pairs", "root", root, "count", len(pairs))

	return pairs, nil
}

func (d *discovery) PairFor(path m.Path) (m.TestFilePair, error) {
	info, err := d.FileInfo(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return m.TestFilePair{}, m.NewTestFileMissingError(path)
		}

		return m.TestFilePair{}, m.NewUnreadableFileError(path, err)
	}

	if info.IsDir() {
		return m.TestFilePair{}, m.NewTestFileMissingError(path)
	}

	module, ok := ModulePathFor(path)
	if !ok {
		return m.TestFilePair{}, m.NewNotATestFileError(path)
	}

	if !d.isFile(module) {
		return m.TestFilePair{}, m.NewModuleUnderTestMissingError(module)
	}

	return m.NewTestFilePair(path, module), nil
}

// resolve pairs a walked file with its module, reporting false when the file is
// not a test file or its module does not exist.
func (d *discovery) resolve(path m.Path) (m.TestFilePair, bool) {
	module, ok := ModulePathFor(path)
	if !ok {
		return m.TestFilePair{}, false
	}

	if !d.isFile(module) {
		slog.Debug("Dropping test file without module under test", "test", path, "module", module)
		return m.TestFilePair{}, false
	}

	return m.NewTestFilePair(path, module), true
}

func (d *discovery) isFile(path m.Path) bool {
	info, err := d.FileInfo(path)
	return err == nil && !info.IsDir()
}

func (d *discovery) Ignored(name string) bool {
	_, ok := d.ignore[name]
	return ok
}

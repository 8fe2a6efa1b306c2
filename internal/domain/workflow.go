// Package domain implements test/module pairing, import extraction and mock
// verification, and the workflow composing them.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"mockguard.dev/pkg/mockguard/internal/adapter"
	"mockguard.dev/pkg/mockguard/internal/controller"
	m "mockguard.dev/pkg/mockguard/internal/model"
)

// ErrCheckFailed is returned when a check finished but found missing mocks or
// pairs that could not be checked.
var ErrCheckFailed = errors.New("mock check failed")

// CheckArgs contains the arguments for a mock check.
type CheckArgs struct {
	// Directory is scanned when Filename is empty.
	Directory m.Path
	// Filename selects a single test file.
	Filename m.Path
	// Threads bounds the number of pairs checked at once; <= 0 uses GOMAXPROCS.
	Threads int
}

// Workflow runs a mock check and reports it through the UI.
type Workflow interface {
	Check(ctx context.Context, args CheckArgs) (m.Summary, error)
	// Watch runs Check, then reruns it after every burst of changes below the
	// checked directory until ctx is done.
	Watch(ctx context.Context, args CheckArgs, watcher adapter.ChangeWatcher) error
}

type workflow struct {
	Discovery
	ImportExtractor
	MockVerifier
	controller.UI
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	discovery Discovery,
	extractor ImportExtractor,
	verifier MockVerifier,
	ui controller.UI,
) Workflow {
	return &workflow{
		Discovery:       discovery,
		ImportExtractor: extractor,
		MockVerifier:    verifier,
		UI:              ui,
	}
}

// Check resolves the pairs selected by args, verifies each one and displays
// the reports in discovery order. A lookup failure in single-file mode is
// returned as is; an empty directory scan is not an error.
func (w *workflow) Check(ctx context.Context, args CheckArgs) (summary m.Summary, err error) {
	if err := w.Start(ctx); err != nil {
		slog.Error("Failed to start UI", "error", err)
		return m.Summary{}, err
	}

	defer func() {
		if closeErr := w.Close(ctx); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	pairs, err := w.resolvePairs(ctx, args)
	if err != nil {
		if errors.Is(err, m.ErrNoPairsFound) {
			w.DisplayNoPairs(ctx, args.Directory)
			return m.Summary{}, nil
		}

		slog.Error("Failed to resolve pairs", "error", err)
		w.DisplayError(ctx, err)

		return m.Summary{}, err
	}

	w.DisplayPairs(ctx, pairs)

	reports, err := w.checkPairs(ctx, pairs, args.Threads)
	if err != nil {
		return m.Summary{}, fmt.Errorf("check pairs: %w", err)
	}

	for _, report := range reports {
		w.DisplayReport(ctx, report)
		summary.Add(report)
	}

	w.DisplaySummary(ctx, summary)

	slog.Info("Mock check finished",
		"pairs", summary.Pairs,
		"mocked", summary.Mocked,
		"missing", summary.Missing,
		"no_imports", summary.NoImports,
		"failed", summary.Failed,
	)

	if !summary.OK() {
		return summary, ErrCheckFailed
	}

	return summary, nil
}

// Watch keeps checking until ctx is done. Failed checks are already displayed,
// so only watcher failures are returned.
func (w *workflow) Watch(ctx context.Context, args CheckArgs, watcher adapter.ChangeWatcher) error {
	root := args.Directory
	if args.Filename != "" {
		root = m.Path(filepath.Dir(string(args.Filename)))
	}

	run := func() {
		if _, err := w.Check(ctx, args); err != nil && ctx.Err() == nil {
			slog.Info("Check finished with problems", "error", err)
		}

		w.DisplayWatching(ctx, root)
	}

	run()

	slog.Info("Watching for changes", "root", root)

	if err := watcher.Watch(ctx, root, w.Ignored, run); err != nil {
		slog.Error("File watcher failed", "root", root, "error", err)
		return err
	}

	return nil
}

func (w *workflow) resolvePairs(ctx context.Context, args CheckArgs) ([]m.TestFilePair, error) {
	if args.Filename != "" {
		pair, err := w.PairFor(args.Filename)
		if err != nil {
			return nil, err
		}

		return []m.TestFilePair{pair}, nil
	}

	w.DisplayScanStart(ctx, args.Directory)

	return w.Discover(ctx, args.Directory)
}

// checkPairs verifies pairs on a bounded worker pool. Reports are stored by
// discovery index so output order does not depend on scheduling.
func (w *workflow) checkPairs(ctx context.Context, pairs []m.TestFilePair, threads int) ([]m.PairReport, error) {
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}

	reports := make([]m.PairReport, len(pairs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	for i, pair := range pairs {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			reports[i] = w.checkPair(pair)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}

// checkPair never fails: errors are recorded in the report so one pair
// cannot stop the others.
func (w *workflow) checkPair(pair m.TestFilePair) m.PairReport {
	slog.Debug("Checking pair", "test", pair.Test, "module", pair.Module)

	imports, err := w.ExtractFile(pair.Module)
	if err != nil {
		slog.Error("Failed to extract imports", "module", pair.Module, "error", err)
		return m.PairReport{Pair: pair, MockFunction: w.MockFunction(), Err: err}
	}

	report, err := w.Verify(pair, imports)
	if err != nil {
		slog.Error("Failed to verify mocks", "test", pair.Test, "error", err)
	}

	return report
}

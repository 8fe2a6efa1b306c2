package domain

import (
	"log/slog"
	"strings"

	"mockguard.dev/pkg/mockguard/internal/adapter"
	m "mockguard.dev/pkg/mockguard/internal/model"
)

// MockVerifier checks that a test file declares a mock for every import of its module.
type MockVerifier interface {
	// Missing returns the identifiers of imports with no mock declaration in
	// testText, in their original order.
	Missing(testText string, imports []m.ModuleIdentifier) []m.ModuleIdentifier
	// Verify reads the pair's test file once and reports the missing mocks.
	// The test file is not read when imports is empty.
	Verify(pair m.TestFilePair, imports []m.ModuleIdentifier) (m.PairReport, error)
	// MockFunction is the mock declaration call searched for, e.g. "jest.mock".
	MockFunction() string
}

// VerifierOption configures a MockVerifier.
type VerifierOption func(*mockVerifier)

// WithMockFunction overrides the mock declaration call (default "jest.mock").
func WithMockFunction(call string) VerifierOption {
	return func(v *mockVerifier) {
		if call = strings.TrimSpace(call); call != "" {
			v.call = call
		}
	}
}

// WithPatchSuggester attaches a suggester that fills PairReport.Patch for
// pairs with missing mocks.
func WithPatchSuggester(suggester PatchSuggester) VerifierOption {
	return func(v *mockVerifier) {
		v.suggester = suggester
	}
}

type mockVerifier struct {
	adapter.SourceFSAdapter
	call      string
	suggester PatchSuggester
}

// NewMockVerifier creates a MockVerifier reading test files through fsAdapter.
func NewMockVerifier(fsAdapter adapter.SourceFSAdapter, options ...VerifierOption) MockVerifier {
	v := &mockVerifier{
		SourceFSAdapter: fsAdapter,
		call:            m.DefaultMockFunction,
	}

	for _, option := range options {
		option(v)
	}

	return v
}

func (v *mockVerifier) MockFunction() string {
	return v.call
}

func (v *mockVerifier) Missing(testText string, imports []m.ModuleIdentifier) []m.ModuleIdentifier {
	var missing []m.ModuleIdentifier

	for _, id := range imports {
		if !strings.Contains(testText, id.MockPrefix(v.call)) {
			missing = append(missing, id)
		}
	}

	return missing
}

func (v *mockVerifier) Verify(pair m.TestFilePair, imports []m.ModuleIdentifier) (m.PairReport, error) {
	report := m.PairReport{Pair: pair, Imports: imports, MockFunction: v.call}

	if len(imports) == 0 {
		return report, nil
	}

	content, err := v.ReadFile(pair.Test)
	if err != nil {
		report.Err = m.NewUnreadableFileError(pair.Test, err)
		return report, report.Err
	}

	testText := string(content)
	report.Missing = v.Missing(testText, imports)

	if len(report.Missing) > 0 && v.suggester != nil {
		patch, err := v.suggester.Suggest(pair.Test, testText, report.Missing, v.call)
		if err != nil {
			slog.Warn("Failed to build patch suggestion", "test", pair.Test, "error", err)
		}

		report.Patch = patch
	}

	return report, nil
}

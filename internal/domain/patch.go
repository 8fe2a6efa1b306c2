package domain

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	m "mockguard.dev/pkg/mockguard/internal/model"
)

const patchContextLines = 3

// PatchSuggester renders the change that would add missing mock declarations
// to a test file. Nothing is written to disk.
type PatchSuggester interface {
	Suggest(test m.Path, testText string, missing []m.ModuleIdentifier, call string) (string, error)
}

type unifiedDiffSuggester struct{}

// NewPatchSuggester creates a PatchSuggester producing unified diffs.
func NewPatchSuggester() PatchSuggester {
	return unifiedDiffSuggester{}
}

// Suggest inserts one `call("<id>");` line per missing identifier right after
// the last import statement of testText (or at the top when there is none)
// and returns the unified diff.
func (unifiedDiffSuggester) Suggest(test m.Path, testText string, missing []m.ModuleIdentifier, call string) (string, error) {
	if len(missing) == 0 {
		return "", nil
	}

	var declarations strings.Builder

	for _, id := range missing {
		declarations.WriteString(id.Mock(call))
		declarations.WriteString(";\n")
	}

	at := lastImportEnd(testText)

	prefix := testText[:at]
	if prefix != "" && !strings.HasSuffix(prefix, "\n") {
		prefix += "\n"
	}

	patched := prefix + declarations.String() + testText[at:]

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(testText),
		B:        difflib.SplitLines(patched),
		FromFile: string(test),
		ToFile:   string(test),
		Context:  patchContextLines,
	})
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", test, err)
	}

	return diff, nil
}

package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	adaptermocks "mockguard.dev/pkg/mockguard/internal/adapter/mocks"
	m "mockguard.dev/pkg/mockguard/internal/model"
)

func TestMockVerifier_Missing(t *testing.T) {
	tests := []struct {
		name     string
		testText string
		imports  []m.ModuleIdentifier
		want     []m.ModuleIdentifier
	}{
		{
			name:     "reports unmocked imports in order",
			testText: "jest.mock(\"./bar\");\n",
			imports:  []m.ModuleIdentifier{"./bar", "./baz", "./qux"},
			want:     []m.ModuleIdentifier{"./baz", "./qux"},
		},
		{
			name:     "factory argument still matches",
			testText: "jest.mock(\"./bar\", () => ({ bar: jest.fn() }));\n",
			imports:  []m.ModuleIdentifier{"./bar"},
			want:     nil,
		},
		{
			name:     "match is exact and case sensitive",
			testText: "jest.mock(\"./Bar\");\njest.mock(\"./bar/index\");\n",
			imports:  []m.ModuleIdentifier{"./bar"},
			want:     []m.ModuleIdentifier{"./bar"},
		},
		{
			name:     "single quotes are not the declaration form",
			testText: "jest.mock('./bar');\n",
			imports:  []m.ModuleIdentifier{"./bar"},
			want:     []m.ModuleIdentifier{"./bar"},
		},
		{
			name:     "duplicates are harmless",
			testText: "jest.mock(\"./bar\");\n",
			imports:  []m.ModuleIdentifier{"./bar", "./bar", "./baz", "./baz"},
			want:     []m.ModuleIdentifier{"./baz", "./baz"},
		},
	}

	verifier := NewMockVerifier(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, verifier.Missing(tt.testText, tt.imports))
		})
	}
}

func TestMockVerifier_CustomMockFunction(t *testing.T) {
	verifier := NewMockVerifier(nil, WithMockFunction("vi.mock"))

	assert.Equal(t, "vi.mock", verifier.MockFunction())
	assert.Empty(t, verifier.Missing("vi.mock(\"./bar\");", []m.ModuleIdentifier{"./bar"}))
	assert.Equal(t, []m.ModuleIdentifier{"./bar"}, verifier.Missing("jest.mock(\"./bar\");", []m.ModuleIdentifier{"./bar"}))

	assert.Equal(t, m.DefaultMockFunction, NewMockVerifier(nil, WithMockFunction("  ")).MockFunction())
}

func TestMockVerifier_Verify(t *testing.T) {
	pair := m.NewTestFilePair("foo.test.ts", "foo.ts")

	t.Run("reports missing mocks", func(t *testing.T) {
		fsAdapter := adaptermocks.NewMockSourceFSAdapter(t)
		fsAdapter.On("ReadFile", m.Path("foo.test.ts")).Return([]byte("jest.mock(\"./bar\")\n"), nil).Once()

		report, err := NewMockVerifier(fsAdapter).Verify(pair, []m.ModuleIdentifier{"./bar", "./baz"})
		require.NoError(t, err)

		assert.Equal(t, []m.ModuleIdentifier{"./baz"}, report.Missing)
		assert.Equal(t, []string{`jest.mock("./baz")`}, report.ExpectedMocks())
		assert.Equal(t, m.VerdictMissingMocks, report.Verdict())
		assert.Empty(t, report.Patch)
	})

	t.Run("no imports skips reading the test file", func(t *testing.T) {
		fsAdapter := adaptermocks.NewMockSourceFSAdapter(t)

		report, err := NewMockVerifier(fsAdapter).Verify(pair, nil)
		require.NoError(t, err)

		assert.Equal(t, m.VerdictNoImports, report.Verdict())
		assert.Empty(t, report.Missing)
		fsAdapter.AssertNotCalled(t, "ReadFile", m.Path("foo.test.ts"))
	})

	t.Run("unreadable test file", func(t *testing.T) {
		fsAdapter := adaptermocks.NewMockSourceFSAdapter(t)
		fsAdapter.On("ReadFile", m.Path("foo.test.ts")).Return(nil, errors.New("boom"))

		report, err := NewMockVerifier(fsAdapter).Verify(pair, []m.ModuleIdentifier{"./bar"})
		require.ErrorIs(t, err, m.ErrUnreadableFile)
		assert.Equal(t, m.VerdictFailed, report.Verdict())
	})

	t.Run("attaches a patch when a suggester is configured", func(t *testing.T) {
		fsAdapter := adaptermocks.NewMockSourceFSAdapter(t)
		fsAdapter.On("ReadFile", m.Path("foo.test.ts")).Return([]byte("import { foo } from \"./foo\";\n"), nil)

		verifier := NewMockVerifier(fsAdapter, WithPatchSuggester(NewPatchSuggester()))
		report, err := verifier.Verify(pair, []m.ModuleIdentifier{"./bar"})
		require.NoError(t, err)

		assert.Contains(t, report.Patch, "+jest.mock(\"./bar\");")
	})
}

func TestMockVerifier_MonotonicProperty(t *testing.T) {
	verifier := NewMockVerifier(nil)

	rapid.Check(t, func(rt *rapid.T) {
		imports := rapid.SliceOfN(rapid.Map(moduleNameGen(), func(s string) m.ModuleIdentifier {
			return m.ModuleIdentifier(s)
		}), 1, 8).Draw(rt, "imports")
		mocked := rapid.SliceOf(rapid.SampledFrom(imports)).Draw(rt, "mocked")

		var b strings.Builder
		for _, id := range mocked {
			fmt.Fprintf(&b, "%s;\n", id.Mock(m.DefaultMockFunction))
		}

		before := verifier.Missing(b.String(), imports)
		if len(before) == 0 {
			return
		}

		added := rapid.SampledFrom(before).Draw(rt, "added")
		after := verifier.Missing(b.String()+added.Mock(m.DefaultMockFunction)+";\n", imports)

		want := make([]m.ModuleIdentifier, 0, len(before))
		for _, id := range before {
			if id != added {
				want = append(want, id)
			}
		}

		if len(want) == 0 {
			assert.Empty(rt, after)
			return
		}

		assert.Equal(rt, want, after)
	})
}

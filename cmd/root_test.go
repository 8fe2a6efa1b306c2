package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"mockguard.dev/pkg/mockguard/internal/domain"
	m "mockguard.dev/pkg/mockguard/internal/model"
)

func writeFixture(t *testing.T, path, contents string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

// newFixture lays out foo.ts importing ./bar and ./baz with only ./bar mocked.
func newFixture(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	writeFixture(t, filepath.Join(root, "foo.ts"), "import { x } from \"./bar\";\nimport { y } from \"./baz\";\n")
	writeFixture(t, filepath.Join(root, "foo.test.ts"), "import { foo } from \"./foo\";\n\njest.mock(\"./bar\");\n")

	return root
}

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	return executeRootContext(t, context.Background(), args...)
}

func executeRootContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()

	// Flags bind to the global viper instance; start each run from defaults.
	viper.Reset()
	t.Cleanup(viper.Reset)

	cmd := newRootCmd()
	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(output)

	logFile := filepath.Join(t.TempDir(), "test.log")
	cmd.SetArgs(append([]string{"--log-file", logFile}, args...))

	err := cmd.ExecuteContext(ctx)

	return output.String(), err
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "mockguard", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, rootLongDescription, cmd.Long)

	for _, name := range []string{mocksFlagName, filenameFlagName, directoryFlagName, parallelFlagName, patchFlagName, formatFlagName, watchFlagName} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestRootCmd_WithoutMocksFlag(t *testing.T) {
	output, err := executeRoot(t)

	require.NoError(t, err)
	assert.Contains(t, output, noCommandMessage)
}

func TestRootCmd_DirectoryReportsMissingMocks(t *testing.T) {
	root := newFixture(t)

	output, err := executeRoot(t, "--mocks", "--directory", root)

	require.ErrorIs(t, err, domain.ErrCheckFailed)
	assert.Contains(t, output, "Looking for files in: "+root)
	assert.Contains(t, output, filepath.Join(root, "foo.test.ts")+" -> "+filepath.Join(root, "foo.ts"))
	assert.Contains(t, output, "Missing mocks:")
	assert.Contains(t, output, `    jest.mock("./baz")`)
	assert.NotContains(t, output, `    jest.mock("./bar")`)
}

func TestRootCmd_DirectoryAllMocked(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, filepath.Join(root, "a.ts"), "import * as b from \"./b\";\n")
	writeFixture(t, filepath.Join(root, "a.spec.ts"), "jest.mock(\"./b\");\n")

	output, err := executeRoot(t, "-m", "-d", root, "-p", "4")

	require.NoError(t, err)
	assert.Contains(t, output, "Good job! All your imports are mocked.")
}

func TestRootCmd_NoPairs(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, filepath.Join(root, "a.test.ts"), "")

	output, err := executeRoot(t, "--mocks", "--directory", root)

	require.NoError(t, err)
	assert.Contains(t, output, "Couldn't find any modules under test")
}

func TestRootCmd_SingleFileModuleMissing(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, filepath.Join(root, "a.spec.ts"), "")

	output, err := executeRoot(t, "--mocks", "--filename", filepath.Join(root, "a.spec.ts"))

	require.ErrorIs(t, err, m.ErrModuleUnderTestMissing)
	assert.Contains(t, output, "Sorry, module under test doesn't exist: "+filepath.Join(root, "a.ts"))
}

func TestRootCmd_FilenameAndDirectoryExclusive(t *testing.T) {
	root := newFixture(t)

	_, err := executeRoot(t, "--mocks", "-f", filepath.Join(root, "foo.test.ts"), "-d", root)

	require.Error(t, err)
}

func TestRootCmd_Patch(t *testing.T) {
	root := newFixture(t)

	output, err := executeRoot(t, "--mocks", "-f", filepath.Join(root, "foo.test.ts"), "--patch")

	require.ErrorIs(t, err, domain.ErrCheckFailed)
	assert.Contains(t, output, "+jest.mock(\"./baz\");")
}

func TestRootCmd_YAMLFormat(t *testing.T) {
	root := newFixture(t)

	output, err := executeRoot(t, "--mocks", "-d", root, "--format", "yaml")
	require.ErrorIs(t, err, domain.ErrCheckFailed)

	var doc struct {
		Pairs []struct {
			Verdict  string   `yaml:"verdict"`
			Missing  []string `yaml:"missing"`
			Expected []string `yaml:"expected"`
		} `yaml:"pairs"`
		Summary struct {
			Pairs   int `yaml:"pairs"`
			Missing int `yaml:"missing"`
		} `yaml:"summary"`
	}

	require.NoError(t, yaml.Unmarshal([]byte(output), &doc))
	require.Len(t, doc.Pairs, 1)
	assert.Equal(t, "missing-mocks", doc.Pairs[0].Verdict)
	assert.Equal(t, []string{"./baz"}, doc.Pairs[0].Missing)
	assert.Equal(t, []string{`jest.mock("./baz")`}, doc.Pairs[0].Expected)
	assert.Equal(t, 1, doc.Summary.Pairs)
	assert.Equal(t, 1, doc.Summary.Missing)
}

func TestRootCmd_UnknownFormat(t *testing.T) {
	root := newFixture(t)

	_, err := executeRoot(t, "--mocks", "-d", root, "--format", "xml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestRootCmd_WatchStopsWithContext(t *testing.T) {
	root := newFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	output, err := executeRootContext(t, ctx, "--mocks", "-d", root, "--watch")

	require.NoError(t, err)
	assert.Contains(t, output, "Watching "+root+" for changes.")
}

func TestRootCmd_InvalidConfigFails(t *testing.T) {
	tempDir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, configFileName), []byte("run: [\n"), 0o644))

	viper.Reset()
	configErr = readConfig()
	t.Cleanup(func() { configErr = nil })

	output, err := executeRoot(t, "--mocks", "-d", newFixture(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
	assert.True(t, reportable(err))
	assert.NotContains(t, output, "Checking")
}

func TestReportable(t *testing.T) {
	assert.False(t, reportable(domain.ErrCheckFailed))
	assert.False(t, reportable(fmt.Errorf("wrapped: %w", m.NewNotATestFileError("a.ts"))))
	assert.True(t, reportable(errors.New("boom")))
}

package cmd

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var versionOutput = regexp.MustCompile(`^(version: unknown\n|mockguard version\t \S+\ngo version\t go[^\n]+\n)$`)

func TestVersionCmd(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{name: "prints build info", args: []string{}},
		{name: "rejects arguments", args: []string{"extra"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newVersionCmd()

			out := &bytes.Buffer{}
			cmd.SetOut(out)
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), `unknown command "extra" for "version"`)
				assert.NotRegexp(t, versionOutput, out.String())

				return
			}

			require.NoError(t, err)
			assert.Regexp(t, versionOutput, out.String())
		})
	}
}

func TestVersionCmd_RegisteredOnRoot(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"version"})
	require.NoError(t, err)
	assert.Equal(t, "version", cmd.Name())
}

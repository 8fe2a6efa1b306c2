package controller

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	m "mockguard.dev/pkg/mockguard/internal/model"
)

type yamlPair struct {
	Test     string   `yaml:"test"`
	Module   string   `yaml:"module"`
	Verdict  string   `yaml:"verdict"`
	Imports  []string `yaml:"imports,omitempty"`
	Missing  []string `yaml:"missing,omitempty"`
	Expected []string `yaml:"expected,omitempty"`
	Patch    string   `yaml:"patch,omitempty"`
	Error    string   `yaml:"error,omitempty"`
}

type yamlSummary struct {
	Pairs     int `yaml:"pairs"`
	Mocked    int `yaml:"mocked"`
	Missing   int `yaml:"missing"`
	NoImports int `yaml:"no_imports"`
	Failed    int `yaml:"failed"`
}

type yamlDocument struct {
	Root    string       `yaml:"root,omitempty"`
	Error   string       `yaml:"error,omitempty"`
	Pairs   []yamlPair   `yaml:"pairs"`
	Summary *yamlSummary `yaml:"summary,omitempty"`
}

// YAMLUI buffers a run and writes it as one YAML document on Close. Repeated
// runs (watch mode) produce a multi-document stream.
type YAMLUI struct {
	cmd     *cobra.Command
	doc     yamlDocument
	written int
}

// NewYAMLUI creates a new YAMLUI.
func NewYAMLUI(cmd *cobra.Command) *YAMLUI {
	return &YAMLUI{cmd: cmd, doc: newYAMLDocument()}
}

func newYAMLDocument() yamlDocument {
	return yamlDocument{Pairs: []yamlPair{}}
}

// Start begins a new document.
func (y *YAMLUI) Start(ctx context.Context) error {
	y.doc = newYAMLDocument()

	return ctx.Err()
}

// Close encodes the collected document to the command output.
func (y *YAMLUI) Close(_ context.Context) error {
	out := y.cmd.OutOrStdout()

	if y.written > 0 {
		if _, err := fmt.Fprintln(out, "---"); err != nil {
			return fmt.Errorf("write yaml separator: %w", err)
		}
	}

	y.written++

	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)

	if err := encoder.Encode(y.doc); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}

	return encoder.Close()
}

// DisplayScanStart records the scanned directory.
func (y *YAMLUI) DisplayScanStart(_ context.Context, root m.Path) {
	y.doc.Root = string(root)
}

// DisplayPairs is a no-op; pairs are written with their reports.
func (y *YAMLUI) DisplayPairs(context.Context, []m.TestFilePair) {}

// DisplayNoPairs records an empty scan.
func (y *YAMLUI) DisplayNoPairs(_ context.Context, root m.Path) {
	y.doc.Root = string(root)
}

// DisplayReport records one pair report.
func (y *YAMLUI) DisplayReport(_ context.Context, report m.PairReport) {
	pair := yamlPair{
		Test:     string(report.Pair.Test),
		Module:   string(report.Pair.Module),
		Verdict:  report.Verdict().String(),
		Imports:  identifiers(report.Imports),
		Missing:  identifiers(report.Missing),
		Expected: report.ExpectedMocks(),
		Patch:    report.Patch,
	}

	if len(pair.Expected) == 0 {
		pair.Expected = nil
	}

	if report.Err != nil {
		pair.Error = report.Err.Error()
	}

	y.doc.Pairs = append(y.doc.Pairs, pair)
}

// DisplaySummary records the verdict counts.
func (y *YAMLUI) DisplaySummary(_ context.Context, summary m.Summary) {
	y.doc.Summary = &yamlSummary{
		Pairs:     summary.Pairs,
		Mocked:    summary.Mocked,
		Missing:   summary.Missing,
		NoImports: summary.NoImports,
		Failed:    summary.Failed,
	}
}

// DisplayError records a terminal error.
func (y *YAMLUI) DisplayError(_ context.Context, err error) {
	if err != nil {
		y.doc.Error = err.Error()
	}
}

// DisplayWatching is a no-op so the output stays a YAML stream.
func (y *YAMLUI) DisplayWatching(context.Context, m.Path) {}

func identifiers(ids []m.ModuleIdentifier) []string {
	if len(ids) == 0 {
		return nil
	}

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}

	return out
}

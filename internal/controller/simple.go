package controller

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "mockguard.dev/pkg/mockguard/internal/model"
)

var (
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

// SimpleUI prints human readable reports through the cobra command output.
type SimpleUI struct {
	cmd   *cobra.Command
	color bool
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, color bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, color: color}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context) error {
	return ctx.Err()
}

// Close finalizes the UI. Everything is already printed.
func (s *SimpleUI) Close(_ context.Context) error {
	return nil
}

// DisplayScanStart announces the scanned directory.
func (s *SimpleUI) DisplayScanStart(_ context.Context, root m.Path) {
	s.printf("Looking for files in: %s\n", root)
}

// DisplayPairs lists the discovered test -> module pairs.
func (s *SimpleUI) DisplayPairs(_ context.Context, pairs []m.TestFilePair) {
	s.printf("Modules under test:\n")

	for _, pair := range pairs {
		s.printf("%s\n", pair)
	}

	s.printf("Checking that all imports have a mock.\n")
}

// DisplayNoPairs tells the user the scan found nothing to check.
func (s *SimpleUI) DisplayNoPairs(_ context.Context, root m.Path) {
	s.printf("Couldn't find any modules under test in %s.\n", root)
}

// DisplayReport prints the imports and missing mocks of one pair.
func (s *SimpleUI) DisplayReport(_ context.Context, report m.PairReport) {
	s.printf("Checking %s... \n", report.Pair)

	switch report.Verdict() {
	case m.VerdictFailed:
		s.printf("  %s\n", s.paint(missingStyle, "Error: "+report.Err.Error()))
		return
	case m.VerdictNoImports:
		s.printf("  No imports.\n")
		return
	}

	s.printf("  Imports:\n")

	for _, id := range report.Imports {
		s.printf("    %s\n", id)
	}

	if report.Verdict() == m.VerdictMocked {
		s.printf("\n%s All your imports are mocked.\n\n", s.paint(successStyle, "Good job!"))
		return
	}

	s.printf("%s\n", s.paint(missingStyle, "  Missing mocks:"))

	for _, mock := range report.ExpectedMocks() {
		s.printf("    %s\n", mock)
	}

	if report.Patch != "" {
		s.printf("\n%s\n", s.paint(mutedStyle, "  Suggested change:"))
		s.printf("%s\n", report.Patch)
	}
}

// DisplaySummary renders the verdict counts as a table.
func (s *SimpleUI) DisplaySummary(_ context.Context, summary m.Summary) {
	s.printf("\n%s", renderSummaryTable(summary))
}

// DisplayError prints a terminal error such as a failed single-file lookup.
func (s *SimpleUI) DisplayError(_ context.Context, err error) {
	if err == nil {
		return
	}

	s.printf("%s\n", s.paint(missingStyle, err.Error()))
}

// DisplayWatching tells the user the check reruns on changes below root.
func (s *SimpleUI) DisplayWatching(_ context.Context, root m.Path) {
	s.printf("\n%s\n", s.paint(mutedStyle, fmt.Sprintf("Watching %s for changes. Press Ctrl+C to stop.", root)))
}

func renderSummaryTable(summary m.Summary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Result", "Pairs"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	table.Append([]string{"All mocked", strconv.Itoa(summary.Mocked)})
	table.Append([]string{"Missing mocks", strconv.Itoa(summary.Missing)})
	table.Append([]string{"No imports", strconv.Itoa(summary.NoImports)})
	table.Append([]string{"Failed", strconv.Itoa(summary.Failed)})

	table.SetFooter([]string{"Total", strconv.Itoa(summary.Pairs)})

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) paint(style lipgloss.Style, text string) string {
	if !s.color {
		return text
	}

	return style.Render(text)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

// Package controller provides output adapters for displaying mock check results.
package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "mockguard.dev/pkg/mockguard/internal/model"
)

// Format selects how reports are rendered.
type Format string

// Available Format values.
const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatText:
		return FormatText, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want %q or %q)", value, FormatText, FormatYAML)
	}
}

// UI defines the interface for displaying mock check progress and results.
// Implementations can use different output methods (styled text, YAML, etc).
type UI interface {
	Start(ctx context.Context) error
	Close(ctx context.Context) error
	DisplayScanStart(ctx context.Context, root m.Path)
	DisplayPairs(ctx context.Context, pairs []m.TestFilePair)
	DisplayNoPairs(ctx context.Context, root m.Path)
	DisplayReport(ctx context.Context, report m.PairReport)
	DisplaySummary(ctx context.Context, summary m.Summary)
	DisplayError(ctx context.Context, err error)
	DisplayWatching(ctx context.Context, root m.Path)
}

// NewUI picks the UI implementation for format. Colour is only used by the
// text UI and only when color is true.
func NewUI(cmd *cobra.Command, format Format, color bool) UI {
	if format == FormatYAML {
		return NewYAMLUI(cmd)
	}

	return NewSimpleUI(cmd, color)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}

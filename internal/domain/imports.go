package domain

import (
	"regexp"
	"sort"
	"strings"

	"mockguard.dev/pkg/mockguard/internal/adapter"
	m "mockguard.dev/pkg/mockguard/internal/model"
)

// Markers delimiting a region whose imports are exempt from mocking.
const (
	RegionStartMarker = "//#region not-mocked"
	RegionEndMarker   = "//#endregion"
)

// An import statement starts a line or follows a semicolon, so several
// statements on one line (or minified code) are all found while commented out
// imports are not. Braces and `*` may follow the keyword directly; an
// identifier needs whitespace.
const (
	statementStart = `(?m)(?:^|;)[ \t]*import`
	beforeSymbol   = statementStart + `\s*(?:type\s*)?`
	beforeName     = statementStart + `\s+(?:type\s+)?`
	identifier     = `[A-Za-z_$][\w$]*`
	bracedList     = `\{[^}]*\}`
	fromAfterBrace = `\s*from\s*"([^"\n]+)"`
	fromAfterIdent = `\s+from\s*"([^"\n]+)"`
)

// importShape is one recognised import statement form. The first capture
// group of pattern holds the module identifier.
type importShape struct {
	name    string
	pattern *regexp.Regexp
}

// importShapes is the closed set of recognised forms. New syntaxes are added here.
var importShapes = []importShape{
	{"named", regexp.MustCompile(beforeSymbol + bracedList + fromAfterBrace)},
	{"default-named", regexp.MustCompile(beforeName + identifier + `\s*,\s*` + bracedList + fromAfterBrace)},
	{"namespace", regexp.MustCompile(beforeSymbol + `\*\s*as\s+` + identifier + fromAfterIdent)},
	{"default-namespace", regexp.MustCompile(beforeName + identifier + `\s*,\s*\*\s*as\s+` + identifier + fromAfterIdent)},
	{"default", regexp.MustCompile(beforeName + identifier + fromAfterIdent)},
}

// sideEffectImport only matters for locating the import block of a file.
var sideEffectImport = regexp.MustCompile(statementStart + `\s*"[^"\n]+"`)

// ImportExtractor lists the modules imported by a source file.
type ImportExtractor interface {
	// Extract returns the imported module identifiers of text in order of
	// appearance, duplicates included. Imports inside exclusion regions are skipped.
	Extract(text string) []m.ModuleIdentifier
	// ExtractFile reads path and extracts its imports.
	ExtractFile(path m.Path) ([]m.ModuleIdentifier, error)
}

type importExtractor struct {
	adapter.SourceFSAdapter
}

// NewImportExtractor creates an ImportExtractor reading files through fsAdapter.
func NewImportExtractor(fsAdapter adapter.SourceFSAdapter) ImportExtractor {
	return &importExtractor{SourceFSAdapter: fsAdapter}
}

func (e *importExtractor) ExtractFile(path m.Path) ([]m.ModuleIdentifier, error) {
	content, err := e.ReadFile(path)
	if err != nil {
		return nil, m.NewUnreadableFileError(path, err)
	}

	return e.Extract(string(content)), nil
}

func (e *importExtractor) Extract(text string) []m.ModuleIdentifier {
	return extractImports(StripExclusionRegions(text))
}

type importMatch struct {
	offset int
	id     m.ModuleIdentifier
}

func extractImports(text string) []m.ModuleIdentifier {
	var matches []importMatch

	for _, shape := range importShapes {
		for _, loc := range shape.pattern.FindAllStringSubmatchIndex(text, -1) {
			matches = append(matches, importMatch{
				offset: loc[0],
				id:     m.ModuleIdentifier(text[loc[2]:loc[3]]),
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].offset < matches[j].offset
	})

	ids := make([]m.ModuleIdentifier, 0, len(matches))
	for _, match := range matches {
		ids = append(ids, match.id)
	}

	return ids
}

// StripExclusionRegions removes every exclusion region, markers included.
// Each start marker closes at the nearest following end marker; a start marker
// inside an open region is plain text, and an unterminated region runs to the
// end of text. End markers outside a region are kept.
func StripExclusionRegions(text string) string {
	var b strings.Builder

	rest := text

	for {
		start := strings.Index(rest, RegionStartMarker)
		if start < 0 {
			b.WriteString(rest)
			break
		}

		b.WriteString(rest[:start])

		inside := rest[start+len(RegionStartMarker):]

		end := strings.Index(inside, RegionEndMarker)
		if end < 0 {
			break
		}

		rest = inside[end+len(RegionEndMarker):]
	}

	return b.String()
}

// lastImportEnd returns the offset just past the line holding the end of the
// last import statement in text, or 0 when there is none.
func lastImportEnd(text string) int {
	end := -1

	patterns := make([]*regexp.Regexp, 0, len(importShapes)+1)
	for _, shape := range importShapes {
		patterns = append(patterns, shape.pattern)
	}

	patterns = append(patterns, sideEffectImport)

	for _, pattern := range patterns {
		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			if loc[1] > end {
				end = loc[1]
			}
		}
	}

	if end < 0 {
		return 0
	}

	if newline := strings.IndexByte(text[end:], '\n'); newline >= 0 {
		return end + newline + 1
	}

	return len(text)
}

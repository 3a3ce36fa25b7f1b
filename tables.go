package menuval

import (
	"context"
	"strings"
)

// Canonical configuration table names.
const (
	TableGenericWords       = "GenericWords"
	TableAdWords            = "AdWords"
	TableForbiddenWords     = "ForbiddenWords"
	TableSafeBacon          = "SafeBacon"
	TableSafeCuracao        = "SafeCuracao"
	TableTerminology        = "Terminology"
	TableDescriptionLibrary = "DescriptionLibrary"
)

// tableAliases lists accepted table names per canonical table, as folded keys.
var tableAliases = map[string][]string{
	TableGenericWords:       {"genericwords", "generic"},
	TableAdWords:            {"adwords", "ads"},
	TableForbiddenWords:     {"forbiddenwords", "forbidden"},
	TableSafeBacon:          {"safebacon"},
	TableSafeCuracao:        {"safecuracao"},
	TableTerminology:        {"terminology"},
	TableDescriptionLibrary: {"descriptionlibrary"},
}

// TableNames returns the canonical table names in load order.
func TableNames() []string {
	return []string{
		TableGenericWords,
		TableAdWords,
		TableForbiddenWords,
		TableSafeBacon,
		TableSafeCuracao,
		TableTerminology,
		TableDescriptionLibrary,
	}
}

// ConfigSource fetches the raw configuration tables.
type ConfigSource interface {
	FetchTables(ctx context.Context) (Tables, error)
}

// Tables maps table names to their rows of cells.
type Tables map[string][][]string

// foldTableName lowercases and drops '_', '-' and spaces so "Generic_Words"
// and "generic words" address the same table.
func foldTableName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch r {
		case '_', '-', ' ':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Rows returns the rows of a canonical table, trying each accepted alias.
// The first non-empty match wins.
func (t Tables) Rows(canonical string) ([][]string, bool) {
	aliases, ok := tableAliases[canonical]
	if !ok {
		aliases = []string{foldTableName(canonical)}
	}

	folded := make(map[string][][]string, len(t))
	for name, rows := range t {
		key := foldTableName(name)
		if _, seen := folded[key]; !seen || len(folded[key]) == 0 {
			folded[key] = rows
		}
	}

	for _, alias := range aliases {
		if rows, ok := folded[alias]; ok && len(rows) > 0 {
			return rows, true
		}
	}
	return nil, false
}

// Words flattens every non-empty cell of a table. With skipHeader the first
// row is dropped unless it is the only row.
func (t Tables) Words(canonical string, skipHeader bool) []string {
	rows, ok := t.Rows(canonical)
	if !ok {
		return nil
	}
	if skipHeader && len(rows) > 1 {
		rows = rows[1:]
	}

	var words []string
	for _, row := range rows {
		for _, cell := range row {
			if c := strings.TrimSpace(cell); c != "" {
				words = append(words, c)
			}
		}
	}
	return words
}

// TermRows reads the Terminology table: header skipped, source and target in
// the first two columns. Short rows are returned with a blank target so the
// index counts them as skipped.
func (t Tables) TermRows() []TermRow {
	rows, ok := t.Rows(TableTerminology)
	if !ok || len(rows) < 2 {
		return nil
	}

	out := make([]TermRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		var tr TermRow
		if len(row) > 0 {
			tr.Source = strings.TrimSpace(row[0])
		}
		if len(row) > 1 {
			tr.Target = strings.TrimSpace(row[1])
		}
		out = append(out, tr)
	}
	return out
}

// DescriptionEntries reads the DescriptionLibrary table: header skipped,
// item name, English and Arabic columns. Two-column rows get an empty Arabic text.
func (t Tables) DescriptionEntries() []DescriptionEntry {
	rows, ok := t.Rows(TableDescriptionLibrary)
	if !ok || len(rows) < 2 {
		return nil
	}

	out := make([]DescriptionEntry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		switch {
		case len(row) >= 3:
			out = append(out, DescriptionEntry{
				ItemName: strings.TrimSpace(row[0]),
				English:  strings.TrimSpace(row[1]),
				Arabic:   strings.TrimSpace(row[2]),
			})
		case len(row) == 2:
			out = append(out, DescriptionEntry{
				ItemName: strings.TrimSpace(row[0]),
				English:  strings.TrimSpace(row[1]),
			})
		}
	}
	return out
}

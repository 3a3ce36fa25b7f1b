package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZaguanLabs/menuval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const workbook = `
tables:
  Generic_Words: [fresh, tasty, delicious]
  Ad Words:
    - premium
  ForbiddenWords:
    - [Forbidden]
    - [pork]
    - [wine]
  Terminology:
    Chicken: دجاج
    Beef Burger: برجر لحم
  DescriptionLibrary:
    - [Item Name, English, Arabic]
    - [Hummus, Chickpea dip with tahini, حمص بالطحينة]
  SafeBacon:
`

func TestParseYAML(t *testing.T) {
	tables, err := ParseYAML([]byte(workbook))
	require.NoError(t, err)

	assert.Equal(t, []string{"fresh", "tasty", "delicious"}, tables.Words(menuval.TableGenericWords, false))
	assert.Equal(t, []string{"premium"}, tables.Words(menuval.TableAdWords, false))
	assert.Equal(t, []string{"pork", "wine"}, tables.Words(menuval.TableForbiddenWords, true))

	terms := tables.TermRows()
	require.Len(t, terms, 2)
	assert.Equal(t, menuval.TermRow{Source: "Chicken", Target: "دجاج"}, terms[0])
	assert.Equal(t, "Beef Burger", terms[1].Source)

	entries := tables.DescriptionEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "حمص بالطحينة", entries[0].Arabic)

	rows, ok := tables.Rows(menuval.TableSafeBacon)
	assert.False(t, ok && len(rows) > 0, "null table should be empty")
}

func TestParseYAML_TopLevelTables(t *testing.T) {
	tables, err := ParseYAML([]byte("Generic: [fresh]\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, tables.Words(menuval.TableGenericWords, false))
}

func TestParseYAML_Errors(t *testing.T) {
	tests := map[string]string{
		"not a mapping":  "- a\n- b\n",
		"nested cell":    "Terminology:\n  - [a, [b]]\n",
		"mapping row":    "Generic:\n  - {a: b}\n",
		"tables is list": "tables: [a]\n",
		"bad syntax":     "Generic: [unclosed\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseYAML([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestParseYAML_Empty(t *testing.T) {
	tables, err := ParseYAML(nil)
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestYAMLSource_FetchTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menuval.yaml")
	require.NoError(t, os.WriteFile(path, []byte(workbook), 0o600))

	tables, err := NewYAMLSource(path).FetchTables(context.Background())
	require.NoError(t, err)

	snap := menuval.BuildSnapshot(tables)
	tr, ok := snap.Terms.LookupExact(menuval.Normalize("chicken"))
	assert.True(t, ok)
	assert.Equal(t, "دجاج", tr)
}

func TestYAMLSource_MissingFile(t *testing.T) {
	_, err := NewYAMLSource(filepath.Join(t.TempDir(), "missing.yaml")).FetchTables(context.Background())

	var cfgErr *menuval.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, KindYAML, cfgErr.Source)
	assert.False(t, cfgErr.Retryable)
}

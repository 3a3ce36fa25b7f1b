package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZaguanLabs/menuval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWorkbook = `
tables:
  GenericWords: [fresh]
  ForbiddenWords:
    - [Forbidden]
    - [wine]
  Terminology:
    Chicken: دجاج
    Chicken Burger: برجر دجاج
    Beef: لحم بقري
  DescriptionLibrary:
    - [Item Name, English, Arabic]
    - [Chicken Burger, Grilled chicken breast in a bun, صدر دجاج مشوي في خبز]
`

type cli struct {
	dir    string
	base   []string
	stdout bytes.Buffer
	stderr bytes.Buffer
}

// newCLI runs in a temp dir with a YAML workbook and the mock provider.
func newCLI(t *testing.T) *cli {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	wb := filepath.Join(dir, "workbook.yaml")
	require.NoError(t, os.WriteFile(wb, []byte(testWorkbook), 0o600))

	return &cli{
		dir:  dir,
		base: []string{"--source", "yaml", "--source-path", wb, "--provider", "mock", "--log-level", "error", "-q"},
	}
}

func (c *cli) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(c.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (c *cli) run(t *testing.T, stdin string, args ...string) error {
	t.Helper()
	c.stdout.Reset()
	c.stderr.Reset()
	return run(t.Context(), append(append([]string{}, c.base...), args...), strings.NewReader(stdin), &c.stdout, &c.stderr)
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(t.Context(), []string{"version"}, strings.NewReader(""), &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), menuval.Name+" "+menuval.Version)
}

func TestRun_Validate(t *testing.T) {
	c := newCLI(t)
	input := c.write(t, "menu.csv", "Item Name,Description\n"+
		"Chicken Burger,Delicious beef burger\n"+
		"Chicken,\n")

	require.NoError(t, c.run(t, "", "validate", input))

	out := c.stdout.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3, out)
	assert.Equal(t, "Item Name,Description,Valid,Reason,Action,Suggestions,Error", lines[0])
	assert.Contains(t, lines[1], "Category Mismatch: chicken vs beef")
	assert.Contains(t, lines[1], string(menuval.ActionDeleteItem))
	assert.True(t, strings.HasPrefix(lines[2], "Chicken,,true,"), lines[2])
}

func TestRun_ValidateHTMLExport(t *testing.T) {
	c := newCLI(t)
	input := c.write(t, "menu.html", `<table>
		<tr><th>Item Name</th><th>Description</th></tr>
		<tr><td>Chicken Burger</td><td>Delicious <b>beef</b> burger</td></tr>
	</table>`)

	require.NoError(t, c.run(t, "", "validate", "--json", input))

	var got batchOutput
	require.NoError(t, json.Unmarshal(c.stdout.Bytes(), &got))
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "Delicious beef burger", got.Rows[0].Item.Description)
	assert.Equal(t, "Category Mismatch: chicken vs beef", got.Rows[0].Verdict.Reason)
}

func TestRun_ValidateBadSheet(t *testing.T) {
	c := newCLI(t)
	err := c.run(t, "Item Name\nTea\n", "validate", "--sheet", "Dessert")
	require.Error(t, err)
	assert.True(t, menuval.IsInputError(err))
}

func TestRun_TranslateJSON(t *testing.T) {
	c := newCLI(t)

	err := c.run(t, `[{"item_name":"Chicken","description":""}]`, "translate", "--from", "en", "--json")
	require.NoError(t, err)

	var got batchOutput
	require.NoError(t, json.Unmarshal(c.stdout.Bytes(), &got), c.stdout.String())
	require.Len(t, got.Rows, 1)
	require.NotNil(t, got.Rows[0].Translation)
	assert.Equal(t, "دجاج", got.Rows[0].Translation.Name.Text)
	assert.Equal(t, menuval.TagTerminology, got.Rows[0].Translation.Name.Tag)
	assert.Nil(t, got.Rows[0].Verdict)
	assert.Equal(t, 1, got.Report.Translated)
}

func TestRun_TranslateRequiresFrom(t *testing.T) {
	c := newCLI(t)
	err := c.run(t, `[{"item_name":"Chicken"}]`, "translate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "from")
}

func TestRun_ProcessToFile(t *testing.T) {
	c := newCLI(t)
	input := c.write(t, "menu.json", `[
		{"item_name": "<b>Chicken Burger</b>", "description": "Delicious beef burger"},
		{"item_name": "", "description": "orphan"}
	]`)
	out := filepath.Join(c.dir, "out.json")

	require.NoError(t, c.run(t, "", "process", input, "--from", "English", "--json", "-o", out))
	assert.Empty(t, c.stdout.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var got batchOutput
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "Chicken Burger", got.Rows[0].Item.Name)
	assert.False(t, got.Rows[0].Verdict.Valid)
	assert.Equal(t, "برجر دجاج", got.Rows[0].Translation.Name.Text)
	assert.NotEmpty(t, got.Rows[1].Error)
	assert.Equal(t, 1, got.Report.InputErrors)
	assert.False(t, got.Report.Degraded)
}

func TestRun_ProcessCSVHeader(t *testing.T) {
	c := newCLI(t)
	require.NoError(t, c.run(t, "Item Name,Description\nChicken,\n", "process", "--from", "en"))

	header := strings.SplitN(c.stdout.String(), "\n", 2)[0]
	assert.Equal(t, "Item Name,Description,Valid,Reason,Action,Suggestions,"+
		"Translated Name,Name Source,Translated Description,Description Source,Error", header)
}

func TestRun_Lookup(t *testing.T) {
	c := newCLI(t)

	require.NoError(t, c.run(t, "", "lookup", "chicken", "burger"))
	out := c.stdout.String()
	assert.Contains(t, out, "Normalized:  chicken burger")
	assert.Contains(t, out, "برجر دجاج")
	assert.Contains(t, out, "Suggestion:  EN: Grilled chicken breast in a bun")

	require.NoError(t, c.run(t, "", "lookup", "--json", "Beef"))
	var res lookupResult
	require.NoError(t, json.Unmarshal(c.stdout.Bytes(), &res))
	assert.True(t, res.Found)
	assert.Equal(t, "لحم بقري", res.Translation)
	assert.Equal(t, string(menuval.MatchExact), res.Match)
	assert.True(t, res.Verified)
}

func TestRun_CacheFile(t *testing.T) {
	c := newCLI(t)
	cacheFile := filepath.Join(c.dir, "cache.json")

	require.NoError(t, c.run(t, `[{"item_name":"Tea"}]`, "--cache-file", cacheFile, "translate", "--from", "en"))

	data, err := os.ReadFile(cacheFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": "1.0"`)

	// A second run loads the file it just wrote.
	require.NoError(t, c.run(t, `[{"item_name":"Tea"}]`, "--cache-file", cacheFile, "translate", "--from", "en"))
}

func TestRun_ConfigErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	t.Chdir(t.TempDir())

	err := run(t.Context(), []string{"--source", "yaml", "validate"}, strings.NewReader(""), &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source.path")

	err = run(t.Context(), []string{"--provider", "babelfish", "validate"}, strings.NewReader(""), &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider.kind")

	err = run(t.Context(), []string{"--conflicts", "merge", "validate"}, strings.NewReader("Item Name\nTea\n"), &stdout, &stderr)
	require.Error(t, err)
}

func TestRun_OpenAIRequiresKey(t *testing.T) {
	t.Setenv("MENUVAL_PROVIDER_API_KEY", "")
	var stdout, stderr bytes.Buffer
	t.Chdir(t.TempDir())

	err := run(t.Context(), []string{"--provider", "openai", "translate", "--from", "en"}, strings.NewReader("Item Name\nTea\n"), &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key required")
}

func TestRun_Diff(t *testing.T) {
	c := newCLI(t)
	prev := c.write(t, "v1.csv", "Item Name,Description\nHummus,Chickpea dip\nTea,Black tea\nFalafel,\n")
	cur := c.write(t, "v2.csv", "Item Name,Description\nhummus,Chickpea dip\nTea,Mint tea\nLentil Soup,\n")

	require.NoError(t, c.run(t, "", "diff", prev, cur))
	out := c.stdout.String()
	assert.Contains(t, out, "+ Lentil Soup")
	assert.Contains(t, out, "- Falafel")
	assert.Contains(t, out, "~ Tea\n    was: Black tea\n    now: Mint tea")
	assert.NotContains(t, out, "Hummus")

	require.NoError(t, c.run(t, "", "diff", "--json", prev, cur))
	var got struct {
		Stats menuval.DiffStats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(c.stdout.Bytes(), &got))
	assert.Equal(t, menuval.DiffStats{Added: 1, Removed: 1, Unchanged: 1, Modified: 1}, got.Stats)
}

func TestRun_ValidatePreviousVersion(t *testing.T) {
	c := newCLI(t)
	prev := c.write(t, "v1.csv", "Item Name,Description\nChicken,\nTea,Black tea\n")
	cur := c.write(t, "v2.csv", "Item Name,Description\nChicken,\nTea,Mint tea\nJuice,\n")

	require.NoError(t, c.run(t, "", "validate", "--json", "--previous", prev, cur))

	var got batchOutput
	require.NoError(t, json.Unmarshal(c.stdout.Bytes(), &got))
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "Tea", got.Rows[0].Item.Name)
	assert.Equal(t, "Juice", got.Rows[1].Item.Name)
}

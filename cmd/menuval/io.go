package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZaguanLabs/menuval"
	"github.com/ZaguanLabs/menuval/processor"
)

// ioFlags are shared by the batch commands.
type ioFlags struct {
	format string // input format: csv, json, html or "" to detect
	output string
	asJSON bool
}

// readInput reads items from the named file, or from stdin when args is empty.
func (a *app) readInput(args []string, format string) ([]menuval.MenuItem, string, error) {
	var (
		data []byte
		name = "stdin"
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(a.stdin)
		if err != nil {
			return nil, "", fmt.Errorf("reading stdin: %w", err)
		}
	} else {
		items, err := readItemsFile(args[0], format)
		return items, filepath.Base(args[0]), err
	}

	items, err := processor.Extract(data, format)
	if err != nil {
		return nil, "", fmt.Errorf("parsing %s: %w", name, err)
	}
	return items, name, nil
}

// readItemsFile reads items from path. An empty format is taken from the extension.
func readItemsFile(path, format string) ([]menuval.MenuItem, error) {
	data, err := os.ReadFile(path) // #nosec G304 - CLI tool reads user-specified files
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	if format == "" {
		format = filepath.Ext(path)
	}
	items, err := processor.Extract(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return items, nil
}

// openOutput returns the writer for results and a function that closes it.
func (a *app) openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return a.stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path) // #nosec G304 - CLI tool writes user-specified files
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, f.Close, nil
}

// batchOutput is the JSON document written by the batch commands.
type batchOutput struct {
	Rows   []menuval.RowResult `json:"rows"`
	Report menuval.BatchReport `json:"report"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeCSV writes one line per row. Validation and translation columns
// appear only when the mode ran that pipeline.
func writeCSV(w io.Writer, rows []menuval.RowResult, mode menuval.Mode) error {
	cw := csv.NewWriter(w)

	header := []string{"Item Name", "Description"}
	if mode.Validates() {
		header = append(header, "Valid", "Reason", "Action", "Suggestions")
	}
	if mode.Translates() {
		header = append(header, "Translated Name", "Name Source", "Translated Description", "Description Source")
	}
	header = append(header, "Error")
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		rec := []string{r.Item.Name, r.Item.Description}
		if mode.Validates() {
			if v := r.Verdict; v != nil {
				rec = append(rec, fmt.Sprint(v.Valid), v.Reason, string(v.Action), strings.Join(v.Suggestions, "\n"))
			} else {
				rec = append(rec, "", "", "", "")
			}
		}
		if mode.Translates() {
			if t := r.Translation; t != nil {
				rec = append(rec, t.Name.Text, string(t.Name.Tag), t.Description.Text, string(t.Description.Tag))
			} else {
				rec = append(rec, "", "", "", "")
			}
		}
		rec = append(rec, r.Error)
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZaguanLabs/menuval"
)

// CSVDirSource reads one CSV file per table from a directory. The file name
// without extension is the table name, so "Generic_Words.csv" feeds GenericWords.
type CSVDirSource struct {
	dir string
}

// NewCSVDirSource creates a source for dir.
func NewCSVDirSource(dir string) *CSVDirSource {
	return &CSVDirSource{dir: dir}
}

// FetchTables reads every *.csv file in the directory.
func (s *CSVDirSource) FetchTables(ctx context.Context) (menuval.Tables, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*.csv"))
	if err != nil {
		return nil, &menuval.ConfigError{Source: KindCSV, Message: "listing " + s.dir, Cause: err}
	}
	if len(paths) == 0 {
		if _, statErr := os.Stat(s.dir); statErr != nil {
			return nil, &menuval.ConfigError{Source: KindCSV, Message: "opening " + s.dir, Cause: statErr}
		}
	}

	tables := make(menuval.Tables, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := readCSVFile(p)
		if err != nil {
			return nil, &menuval.ConfigError{Source: KindCSV, Message: "reading " + filepath.Base(p), Cause: err}
		}
		name := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		tables[name] = rows
	}
	return tables, nil
}

func readCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path) // #nosec G304 - configured directory
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV reads all records, tolerating ragged rows and a UTF-8 BOM.
func ReadCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		if len(rows) == 0 && len(rec) > 0 {
			rec[0] = strings.TrimPrefix(rec[0], "\ufeff")
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

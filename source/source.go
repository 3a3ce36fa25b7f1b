// Package source loads the configuration tables (word lists, terminology and
// the description library) from Google Sheets, YAML, CSV files or memory.
package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ZaguanLabs/menuval"
)

// Kinds accepted by New.
const (
	KindSheets = "sheets"
	KindYAML   = "yaml"
	KindCSV    = "csv"
	KindNone   = "none"
)

// Options selects and configures a source.
type Options struct {
	Kind            string
	SpreadsheetID   string
	CredentialsFile string
	APIKey          string
	Path            string // YAML file or CSV directory
}

// New builds the configured source. KindNone returns a nil source, which the
// snapshot store treats as a permanently degraded configuration.
func New(ctx context.Context, opts Options) (menuval.ConfigSource, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Kind)) {
	case KindSheets:
		return NewSheetsSource(ctx, SheetsConfig{
			SpreadsheetID:   opts.SpreadsheetID,
			CredentialsFile: opts.CredentialsFile,
			APIKey:          opts.APIKey,
		})
	case KindYAML:
		return NewYAMLSource(opts.Path), nil
	case KindCSV:
		return NewCSVDirSource(opts.Path), nil
	case KindNone, "":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown source kind %q", opts.Kind)
}

// StaticSource serves fixed tables. Err, when set, is returned instead.
type StaticSource struct {
	Tables menuval.Tables
	Err    error
	Delay  time.Duration
}

// NewStaticSource wraps tables.
func NewStaticSource(tables menuval.Tables) *StaticSource {
	return &StaticSource{Tables: tables}
}

// FetchTables returns a copy of the tables.
func (s *StaticSource) FetchTables(ctx context.Context) (menuval.Tables, error) {
	if s.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.Delay):
		}
	}
	if s.Err != nil {
		return nil, s.Err
	}
	out := make(menuval.Tables, len(s.Tables))
	for name, rows := range s.Tables {
		cp := make([][]string, len(rows))
		for i, row := range rows {
			cp[i] = append([]string(nil), row...)
		}
		out[name] = cp
	}
	return out, nil
}

func cellString(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	default:
		return fmt.Sprint(c)
	}
}

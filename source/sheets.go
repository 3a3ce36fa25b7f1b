package source

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ZaguanLabs/menuval"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsSource reads every worksheet of a Google spreadsheet as a table.
type SheetsSource struct {
	svc           *sheets.Service
	spreadsheetID string
}

// SheetsConfig holds configuration for the Sheets source.
type SheetsConfig struct {
	SpreadsheetID   string
	CredentialsFile string // service account JSON file
	CredentialsJSON []byte // service account JSON, takes precedence over the file
	APIKey          string // public sheets only
	Endpoint        string // override for tests and proxies
}

// NewSheetsSource creates a read-only Sheets client.
func NewSheetsSource(ctx context.Context, cfg SheetsConfig) (*SheetsSource, error) {
	if cfg.SpreadsheetID == "" {
		return nil, &menuval.ConfigError{Source: KindSheets, Message: "spreadsheet id is required"}
	}

	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsReadonlyScope)}
	switch {
	case len(cfg.CredentialsJSON) > 0:
		opts = append(opts, option.WithCredentialsJSON(cfg.CredentialsJSON))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, &menuval.ConfigError{Source: KindSheets, Message: "failed to create sheets service", Cause: err}
	}
	return &SheetsSource{svc: svc, spreadsheetID: cfg.SpreadsheetID}, nil
}

// FetchTables lists the worksheet titles, then reads them all in one BatchGet.
func (s *SheetsSource) FetchTables(ctx context.Context) (menuval.Tables, error) {
	ss, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, sheetsError("reading spreadsheet metadata", err)
	}

	titles := make([]string, 0, len(ss.Sheets))
	ranges := make([]string, 0, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		if sh.Properties == nil || sh.Properties.Title == "" {
			continue
		}
		titles = append(titles, sh.Properties.Title)
		ranges = append(ranges, quoteSheet(sh.Properties.Title))
	}

	tables := make(menuval.Tables, len(titles))
	if len(ranges) == 0 {
		return tables, nil
	}

	resp, err := s.svc.Spreadsheets.Values.BatchGet(s.spreadsheetID).
		Ranges(ranges...).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, sheetsError("reading sheet values", err)
	}

	for i, vr := range resp.ValueRanges {
		if i >= len(titles) {
			break
		}
		rows := make([][]string, 0, len(vr.Values))
		for _, raw := range vr.Values {
			row := make([]string, len(raw))
			for j, cell := range raw {
				row[j] = cellString(cell)
			}
			rows = append(rows, row)
		}
		tables[titles[i]] = rows
	}
	return tables, nil
}

// quoteSheet builds an A1 range covering a whole sheet.
func quoteSheet(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

func sheetsError(msg string, err error) error {
	retryable := false
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		retryable = gerr.Code == 429 || gerr.Code >= 500
		msg = fmt.Sprintf("%s (HTTP %d)", msg, gerr.Code)
	}
	return &menuval.ConfigError{Source: KindSheets, Message: msg, Cause: err, Retryable: retryable}
}

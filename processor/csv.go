package processor

import (
	"bytes"
	"encoding/csv"

	"github.com/ZaguanLabs/menuval"
)

// CSVProcessor reads a CSV table with "Item Name" and "Description" columns.
// Header matching ignores case; other columns are ignored.
type CSVProcessor struct{}

// NewCSVProcessor creates a CSV item reader.
func NewCSVProcessor() *CSVProcessor {
	return &CSVProcessor{}
}

// Extract parses data as CSV. Short rows leave the missing fields empty.
func (p *CSVProcessor) Extract(data []byte) ([]menuval.MenuItem, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, &ProcessorError{Message: "failed to parse CSV", Cause: err, ContentType: p.ContentType()}
	}
	return itemsFromRows(records, p.ContentType())
}

// ContentType returns "csv".
func (p *CSVProcessor) ContentType() string {
	return "csv"
}

var _ ItemReader = (*CSVProcessor)(nil)

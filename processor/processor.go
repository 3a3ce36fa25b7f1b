// Package processor extracts menu items from exported documents (CSV, JSON, HTML).
package processor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ZaguanLabs/menuval"
)

// ItemReader extracts menu items from one document format.
type ItemReader interface {
	Extract(data []byte) ([]menuval.MenuItem, error)
	ContentType() string
}

// ProcessorError reports a document that could not be read.
type ProcessorError struct {
	Message     string
	Cause       error
	ContentType string
}

func (e *ProcessorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s processor: %s: %v", e.ContentType, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s processor: %s", e.ContentType, e.Message)
}

func (e *ProcessorError) Unwrap() error {
	return e.Cause
}

var utf8BOM = []byte("\ufeff")

// ForFormat returns the reader for "csv", "json" or "html" ("htm" and "txt" are
// accepted too). An empty format detects the type from the content.
func ForFormat(format string, data []byte) (ItemReader, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if format == "" {
		format = Detect(data)
	}
	switch format {
	case "csv", "txt":
		return NewCSVProcessor(), nil
	case "json":
		return NewJSONProcessor(), nil
	case "html", "htm":
		return NewHTMLProcessor(), nil
	}
	return nil, fmt.Errorf("unsupported input format %q", format)
}

// Detect guesses the format of data: a leading '[' is JSON, a leading '<' is HTML,
// anything else is CSV.
func Detect(data []byte) string {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	switch {
	case len(trimmed) == 0:
		return "csv"
	case trimmed[0] == '[':
		return "json"
	case trimmed[0] == '<':
		return "html"
	}
	return "csv"
}

// Extract reads items in the given format and cleans both fields of every item.
func Extract(data []byte, format string) ([]menuval.MenuItem, error) {
	r, err := ForFormat(format, data)
	if err != nil {
		return nil, err
	}
	items, err := r.Extract(bytes.TrimPrefix(data, utf8BOM))
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i] = menuval.CleanItem(items[i])
	}
	return items, nil
}

// columns locates the item-name and description columns of a header row.
// Missing columns are -1.
func columns(header []string) (name, desc int) {
	name, desc = -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.Join(strings.Fields(h), " ")) {
		case "item name", "item_name", "name", "item":
			if name < 0 {
				name = i
			}
		case "description", "desc":
			if desc < 0 {
				desc = i
			}
		}
	}
	return name, desc
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// itemsFromRows turns a header row plus data rows into items.
func itemsFromRows(rows [][]string, contentType string) ([]menuval.MenuItem, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	nameCol, descCol := columns(rows[0])
	if nameCol < 0 {
		return nil, &ProcessorError{Message: `missing "Item Name" column`, ContentType: contentType}
	}

	items := make([]menuval.MenuItem, 0, len(rows)-1)
	for _, row := range rows[1:] {
		items = append(items, menuval.MenuItem{
			Name:        cell(row, nameCol),
			Description: cell(row, descCol),
		})
	}
	return items, nil
}

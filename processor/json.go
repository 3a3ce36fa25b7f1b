package processor

import (
	"encoding/json"

	"github.com/ZaguanLabs/menuval"
)

// JSONProcessor reads a JSON array of {"item_name", "description"} objects.
type JSONProcessor struct{}

// NewJSONProcessor creates a JSON item reader.
func NewJSONProcessor() *JSONProcessor {
	return &JSONProcessor{}
}

// Extract decodes data as a JSON array of items.
func (p *JSONProcessor) Extract(data []byte) ([]menuval.MenuItem, error) {
	var items []menuval.MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &ProcessorError{Message: "failed to decode JSON", Cause: err, ContentType: p.ContentType()}
	}
	return items, nil
}

// ContentType returns "json".
func (p *JSONProcessor) ContentType() string {
	return "json"
}

var _ ItemReader = (*JSONProcessor)(nil)

package source

import (
	"context"
	"fmt"
	"os"

	"github.com/ZaguanLabs/menuval"
	"gopkg.in/yaml.v3"
)

// YAMLSource reads a workbook-style YAML file. The top level (or a "tables"
// key) maps table names to one of:
//
//	GenericWords: [fresh, tasty]          # one cell per row
//	Terminology:  [[English, Arabic], [Chicken, دجاج]]
//	Terminology:  {Chicken: دجاج, Rice: أرز}   # data rows in file order, header implied
type YAMLSource struct {
	path string
}

// NewYAMLSource creates a source for path.
func NewYAMLSource(path string) *YAMLSource {
	return &YAMLSource{path: path}
}

// FetchTables reads and parses the file on every call so edits are picked up on refresh.
func (s *YAMLSource) FetchTables(ctx context.Context) (menuval.Tables, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &menuval.ConfigError{Source: KindYAML, Message: "reading " + s.path, Cause: err}
	}
	tables, err := ParseYAML(data)
	if err != nil {
		return nil, &menuval.ConfigError{Source: KindYAML, Message: "parsing " + s.path, Cause: err}
	}
	return tables, nil
}

// ParseYAML decodes workbook YAML into tables.
func ParseYAML(data []byte) (menuval.Tables, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return menuval.Tables{}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: top level must be a mapping of table names", root.Line)
	}
	if inner := mappingValue(root, "tables"); inner != nil {
		if inner.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: tables must be a mapping", inner.Line)
		}
		root = inner
	}

	tables := make(menuval.Tables, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		rows, err := nodeRows(root.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", name, err)
		}
		tables[name] = rows
	}
	return tables, nil
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func nodeRows(n *yaml.Node) ([][]string, error) {
	switch n.Kind {
	case yaml.SequenceNode:
		rows := make([][]string, 0, len(n.Content))
		for _, item := range n.Content {
			switch item.Kind {
			case yaml.ScalarNode:
				rows = append(rows, []string{item.Value})
			case yaml.SequenceNode:
				row := make([]string, 0, len(item.Content))
				for _, cell := range item.Content {
					if cell.Kind != yaml.ScalarNode {
						return nil, fmt.Errorf("line %d: nested cell", cell.Line)
					}
					row = append(row, cell.Value)
				}
				rows = append(rows, row)
			default:
				return nil, fmt.Errorf("line %d: row must be a scalar or a list", item.Line)
			}
		}
		return rows, nil
	case yaml.MappingNode:
		rows := make([][]string, 0, len(n.Content)/2+1)
		rows = append(rows, []string{"source", "target"})
		for i := 0; i+1 < len(n.Content); i += 2 {
			rows = append(rows, []string{n.Content[i].Value, n.Content[i+1].Value})
		}
		return rows, nil
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil, nil
		}
		return [][]string{{n.Value}}, nil
	}
	return nil, fmt.Errorf("line %d: unsupported table layout", n.Line)
}

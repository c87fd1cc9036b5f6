// Package rowfile reads find-or-create batch rows from YAML or JSON files.
package rowfile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pricelens/backend/internal/domain"
)

// Load reads rows from path. The document is either a list of rows or a
// mapping with a "rows" key; JSON input parses as YAML.
func Load(path string) ([]domain.BatchRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening row file: %w", err)
	}
	defer f.Close()

	rows, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// Decode parses rows from r
func Decode(r io.Reader) ([]domain.BatchRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing rows: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("parsing rows: empty document")
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var rows []domain.BatchRow
		if err := root.Decode(&rows); err != nil {
			return nil, fmt.Errorf("decoding rows: %w", err)
		}
		return rows, nil
	case yaml.MappingNode:
		var wrapped struct {
			Rows []domain.BatchRow `yaml:"rows"`
		}
		if err := root.Decode(&wrapped); err != nil {
			return nil, fmt.Errorf("decoding rows: %w", err)
		}
		return wrapped.Rows, nil
	default:
		return nil, fmt.Errorf("parsing rows: expected a list or a mapping with rows")
	}
}

// Chunk splits rows into consecutive slices of at most size rows
func Chunk(rows []domain.BatchRow, size int) [][]domain.BatchRow {
	if size <= 0 {
		size = len(rows)
	}
	var chunks [][]domain.BatchRow
	for start := 0; start < len(rows); start += size {
		end := min(start+size, len(rows))
		chunks = append(chunks, rows[start:end])
	}
	return chunks
}

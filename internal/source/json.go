package source

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/leengari/datatable/internal/domain/data"
)

// ReadJSON decodes a JSON array of objects into rows, keeping each
// object's key order. A null or empty array yields no rows.
func ReadJSON(r io.Reader) ([]data.Row, error) {
	var rows []data.Row
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode rows: %w", err)
	}
	return rows, nil
}

// WriteJSON encodes rows as an indented JSON array
func WriteJSON(w io.Writer, rows []data.Row) error {
	if rows == nil {
		rows = []data.Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("failed to encode rows: %w", err)
	}
	return nil
}

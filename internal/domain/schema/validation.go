package schema

import (
	"log/slog"

	"github.com/leengari/datatable/internal/domain/data"
	"github.com/leengari/datatable/internal/domain/errors"
)

// validateRow checks the row's keys against the table columns.
// In strict mode the key set must equal the column set (order ignored);
// otherwise every row is accepted.
// Must be called while holding a lock
func (t *Table) validateRow(row data.Row, op string, rowIndex int) error {
	if !t.strict {
		return nil
	}

	missing, extra := diffKeys(t.columns, row)
	if len(missing) == 0 && len(extra) == 0 && row.Len() == len(t.columns) {
		return nil
	}

	t.logger.Warn("row rejected by strict mode",
		slog.String("table", t.name),
		slog.String("op", op),
		slog.Any("missing", missing),
		slog.Any("extra", extra),
		slog.Int("row", rowIndex),
	)

	return &errors.SchemaMismatchError{
		TableName: t.name,
		Op:        op,
		Missing:   missing,
		Extra:     extra,
		RowIndex:  rowIndex,
	}
}

// diffKeys returns the columns the row lacks and the row keys that are
// not columns.
func diffKeys(columns []string, row data.Row) (missing, extra []string) {
	known := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		known[col] = struct{}{}
		if !row.Has(col) {
			missing = append(missing, col)
		}
	}
	for _, key := range row.Keys() {
		if _, ok := known[key]; !ok {
			extra = append(extra, key)
		}
	}
	return missing, extra
}

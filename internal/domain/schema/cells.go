package schema

import (
	"log/slog"

	"github.com/leengari/datatable/internal/domain/errors"
	"github.com/leengari/datatable/internal/engine"
)

// CellChange is the event payload for EventCellUpdated
type CellChange struct {
	Row    int
	Column string
}

// Cell returns the value at (rowIndex, column). The row is checked first,
// then the column against the table's column list. ok is false when the
// row itself has no such key, which only happens with rows accepted
// outside strict mode.
func (t *Table) Cell(rowIndex int, column string) (value interface{}, ok bool, err error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if err := t.checkCellUnsafe(rowIndex, column, errors.OpGet); err != nil {
		return nil, false, err
	}
	value, ok = t.slots[rowIndex].row.Get(column)
	return value, ok, nil
}

// CellAt is Cell with the column given by position
func (t *Table) CellAt(rowIndex, columnIndex int) (interface{}, bool, error) {
	column, err := t.Column(columnIndex)
	if err != nil {
		return nil, false, err
	}
	return t.Cell(rowIndex, column)
}

// SetCell overwrites the value at (rowIndex, column)
func (t *Table) SetCell(rowIndex int, column string, value interface{}) error {
	t.mu.Lock()
	tableName := t.name
	if err := t.checkCellUnsafe(rowIndex, column, errors.OpUpdate); err != nil {
		t.mu.Unlock()
		return err
	}
	t.slots[rowIndex].row.Set(column, value)
	t.mu.Unlock()

	t.logger.Debug("cell updated",
		slog.String("table", tableName),
		slog.Int("row", rowIndex),
		slog.String("column", column),
	)
	t.notify(engine.EventCellUpdated, tableName, CellChange{Row: rowIndex, Column: column})
	return nil
}

// SetCellAt is SetCell with the column given by position
func (t *Table) SetCellAt(rowIndex, columnIndex int, value interface{}) error {
	column, err := t.Column(columnIndex)
	if err != nil {
		return err
	}
	return t.SetCell(rowIndex, column, value)
}

func (t *Table) checkCellUnsafe(rowIndex int, column, op string) error {
	if err := t.checkRowUnsafe(rowIndex, op); err != nil {
		return err
	}
	if t.columnIndexUnsafe(column) < 0 {
		return &errors.ColumnNotFoundError{TableName: t.name, ColumnName: column}
	}
	return nil
}

package schema

import (
	"log/slog"

	"github.com/leengari/datatable/internal/domain/errors"
	"github.com/leengari/datatable/internal/engine"
)

// Columns returns a copy of the column list, in order
func (t *Table) Columns() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	cols := make([]string, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// Column returns the column name at index
func (t *Table) Column(index int) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.columnUnsafe(index, errors.OpGet)
}

// HasColumn reports whether name is one of the table's columns
func (t *Table) HasColumn(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.columnIndexUnsafe(name) >= 0
}

// ColumnCount returns the number of columns
func (t *Table) ColumnCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.columns)
}

// AddColumn appends one or more columns. Every stored row gets the new
// key with a nil value. Names are added one at a time: a duplicate stops
// the call, and names added before it stay added.
func (t *Table) AddColumn(names ...string) error {
	for _, name := range names {
		t.mu.Lock()
		tableName := t.name
		if t.columnIndexUnsafe(name) >= 0 {
			t.mu.Unlock()
			return &errors.DuplicateColumnError{TableName: tableName, ColumnName: name}
		}

		t.columns = append(t.columns, name)
		for i := range t.slots {
			if t.slots[i].present {
				t.slots[i].row.Set(name, nil)
			}
		}
		t.mu.Unlock()

		t.logger.Debug("column added", slog.String("table", tableName), slog.String("column", name))
		t.notify(engine.EventColumnAdded, tableName, name)
	}
	return nil
}

// RenameColumn renames oldName to newName in the column list and in every
// row. Row keys are rebuilt in column order. Renaming a column to itself
// is a no-op.
func (t *Table) RenameColumn(oldName, newName string) error {
	if oldName == newName {
		return nil
	}

	t.mu.Lock()
	tableName := t.name
	pos := t.columnIndexUnsafe(oldName)
	if pos < 0 {
		t.mu.Unlock()
		return &errors.ColumnNotFoundError{TableName: tableName, ColumnName: oldName}
	}
	if t.columnIndexUnsafe(newName) >= 0 {
		t.mu.Unlock()
		return &errors.DuplicateColumnError{TableName: tableName, ColumnName: newName}
	}

	t.columns[pos] = newName
	for i := range t.slots {
		if !t.slots[i].present {
			continue
		}
		row := t.slots[i].row
		if row.Has(oldName) {
			// a non-strict row may already carry newName as a stray key
			row.Delete(newName)
			row.Rekey(oldName, newName)
		}
		t.slots[i].row = row.Reorder(t.columns)
	}
	t.mu.Unlock()

	t.logger.Debug("column renamed",
		slog.String("table", tableName),
		slog.String("from", oldName),
		slog.String("to", newName),
	)
	t.notify(engine.EventColumnRenamed, tableName, [2]string{oldName, newName})
	return nil
}

// RemoveColumn deletes the column and its values from every row.
// Later columns shift down by one position.
func (t *Table) RemoveColumn(name string) error {
	t.mu.Lock()
	tableName := t.name
	err := t.removeColumnUnsafe(name)
	t.mu.Unlock()

	if err != nil {
		return err
	}

	t.logger.Debug("column removed", slog.String("table", tableName), slog.String("column", name))
	t.notify(engine.EventColumnRemoved, tableName, name)
	return nil
}

// RemoveColumnAt removes the column at index
func (t *Table) RemoveColumnAt(index int) error {
	t.mu.RLock()
	name, err := t.columnUnsafe(index, errors.OpRemove)
	t.mu.RUnlock()

	if err != nil {
		return err
	}
	return t.RemoveColumn(name)
}

// ClearColumns removes every column, one by one. The row count does not
// change: rows are left as empty mappings.
func (t *Table) ClearColumns() {
	t.mu.Lock()
	tableName := t.name
	columns := make([]string, len(t.columns))
	copy(columns, t.columns)
	for _, name := range columns {
		// names come from the live column list, so removal cannot fail
		_ = t.removeColumnUnsafe(name)
	}
	t.columns = nil
	t.mu.Unlock()

	t.logger.Debug("columns cleared", slog.String("table", tableName), slog.Int("removed", len(columns)))
	t.notify(engine.EventColumnsCleared, tableName, columns)
}

// removeColumnUnsafe must be called while holding the write lock
func (t *Table) removeColumnUnsafe(name string) error {
	pos := t.columnIndexUnsafe(name)
	if pos < 0 {
		return &errors.ColumnNotFoundError{TableName: t.name, ColumnName: name}
	}

	t.columns = append(t.columns[:pos], t.columns[pos+1:]...)
	for i := range t.slots {
		if t.slots[i].present {
			t.slots[i].row.Delete(name)
		}
	}
	return nil
}

func (t *Table) columnUnsafe(index int, op string) (string, error) {
	if index < 0 || index >= len(t.columns) {
		return "", &errors.IndexError{
			TableName: t.name,
			Kind:      errors.KindColumn,
			Index:     index,
			Op:        op,
		}
	}
	return t.columns[index], nil
}

func (t *Table) columnIndexUnsafe(name string) int {
	for i, col := range t.columns {
		if col == name {
			return i
		}
	}
	return -1
}

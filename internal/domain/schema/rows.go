package schema

import (
	"log/slog"

	"github.com/leengari/datatable/internal/domain/data"
	"github.com/leengari/datatable/internal/domain/errors"
	"github.com/leengari/datatable/internal/engine"
)

// LoadRows replaces the table content with rows. The columns are taken
// from the first row's keys, in that row's order, and each row then goes
// through the same check as AddRow. A row that fails stops the load;
// rows before it stay in the table.
// An empty rows slice resets both columns and rows.
func (t *Table) LoadRows(rows []data.Row) error {
	t.mu.Lock()
	tableName := t.name
	t.slots = nil
	t.live = 0

	if len(rows) == 0 {
		t.columns = nil
		t.mu.Unlock()

		t.logger.Debug("rows loaded", slog.String("table", tableName), slog.Int("rows", 0))
		t.notify(engine.EventRowsLoaded, tableName, 0)
		return nil
	}

	t.columns = rows[0].Keys()
	for i, row := range rows {
		if err := t.validateRow(row, errors.OpLoad, i); err != nil {
			loaded := t.live
			t.mu.Unlock()

			t.logger.Debug("rows partially loaded",
				slog.String("table", tableName),
				slog.Int("rows", loaded),
				slog.Int("failed_at", i),
			)
			t.notify(engine.EventRowsLoaded, tableName, loaded)
			return err
		}
		t.appendUnsafe(row)
	}
	loaded := t.live
	t.mu.Unlock()

	t.logger.Debug("rows loaded",
		slog.String("table", tableName),
		slog.Int("rows", loaded),
		slog.Int("columns", len(rows[0].Keys())),
	)
	t.notify(engine.EventRowsLoaded, tableName, loaded)
	return nil
}

// Rows returns copies of all rows, in order. Gaps left by RemoveRowAt
// without renumbering are skipped.
func (t *Table) Rows() []data.Row {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rows := make([]data.Row, 0, t.live)
	for _, s := range t.slots {
		if s.present {
			rows = append(rows, s.row.Copy())
		}
	}
	return rows
}

// Row returns a copy of the row at index
func (t *Table) Row(index int) (data.Row, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if err := t.checkRowUnsafe(index, errors.OpGet); err != nil {
		return data.Row{}, err
	}
	return t.slots[index].row.Copy(), nil
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.live
}

// HasRow reports whether a row is stored at index
func (t *Table) HasRow(index int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.checkRowUnsafe(index, errors.OpGet) == nil
}

// NewRow returns a row template with every column set to nil
func (t *Table) NewRow() data.Row {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row := data.NewRow()
	for _, col := range t.columns {
		row.Set(col, nil)
	}
	return row
}

// AddRow appends a copy of row after the last row
func (t *Table) AddRow(row data.Row) error {
	t.mu.Lock()
	tableName := t.name
	if err := t.validateRow(row, errors.OpAdd, -1); err != nil {
		t.mu.Unlock()
		return err
	}
	pos := t.appendUnsafe(row)
	t.mu.Unlock()

	t.logger.Debug("row added", slog.String("table", tableName), slog.Int("row", pos))
	t.notify(engine.EventRowAdded, tableName, pos)
	return nil
}

// InsertRowAt inserts a copy of row at index, shifting the rows at and
// after index. An index past the end appends.
func (t *Table) InsertRowAt(row data.Row, index int) error {
	t.mu.Lock()
	tableName := t.name
	if index < 0 {
		t.mu.Unlock()
		return &errors.InvalidIndexError{TableName: tableName, Index: index}
	}
	if err := t.validateRow(row, errors.OpInsert, -1); err != nil {
		t.mu.Unlock()
		return err
	}

	if index > len(t.slots) {
		index = len(t.slots)
	}
	t.slots = append(t.slots, slot{})
	copy(t.slots[index+1:], t.slots[index:])
	t.slots[index] = slot{row: row.Copy(), present: true}
	t.live++
	t.mu.Unlock()

	t.logger.Debug("row inserted", slog.String("table", tableName), slog.Int("row", index))
	t.notify(engine.EventRowInserted, tableName, index)
	return nil
}

// SetRowAt replaces the row at index with a copy of row
func (t *Table) SetRowAt(row data.Row, index int) error {
	t.mu.Lock()
	tableName := t.name
	if err := t.checkRowUnsafe(index, errors.OpUpdate); err != nil {
		t.mu.Unlock()
		return err
	}
	if err := t.validateRow(row, errors.OpUpdate, -1); err != nil {
		t.mu.Unlock()
		return err
	}
	t.slots[index].row = row.Copy()
	t.mu.Unlock()

	t.logger.Debug("row updated", slog.String("table", tableName), slog.Int("row", index))
	t.notify(engine.EventRowUpdated, tableName, index)
	return nil
}

// RemoveRowAt removes the row at index. With renumber the remaining rows
// are packed so indexes run from 0 without gaps (earlier gaps included).
// Without it the position stays empty and Row/SetRowAt on it fail until
// Compact is called or a row is inserted there.
func (t *Table) RemoveRowAt(index int, renumber bool) error {
	t.mu.Lock()
	tableName := t.name
	if err := t.checkRowUnsafe(index, errors.OpRemove); err != nil {
		t.mu.Unlock()
		return err
	}

	t.slots[index] = slot{}
	t.live--
	if renumber {
		t.compactUnsafe()
	}
	t.mu.Unlock()

	t.logger.Debug("row removed",
		slog.String("table", tableName),
		slog.Int("row", index),
		slog.Bool("renumber", renumber),
	)
	t.notify(engine.EventRowRemoved, tableName, index)
	return nil
}

// Compact renumbers the rows so their indexes are contiguous from 0
func (t *Table) Compact() {
	t.mu.Lock()
	tableName := t.name
	t.compactUnsafe()
	t.mu.Unlock()

	t.notify(engine.EventRowsCompacted, tableName, nil)
}

// ClearRows removes every row. Columns are kept.
func (t *Table) ClearRows() {
	t.mu.Lock()
	tableName := t.name
	removed := t.live
	t.slots = nil
	t.live = 0
	t.mu.Unlock()

	t.logger.Debug("rows cleared", slog.String("table", tableName), slog.Int("removed", removed))
	t.notify(engine.EventRowsCleared, tableName, removed)
}

// appendUnsafe stores a copy of row in a new slot and returns its index.
// Must be called while holding the write lock
func (t *Table) appendUnsafe(row data.Row) int {
	t.slots = append(t.slots, slot{row: row.Copy(), present: true})
	t.live++
	return len(t.slots) - 1
}

// compactUnsafe drops empty slots.
// Must be called while holding the write lock
func (t *Table) compactUnsafe() {
	packed := make([]slot, 0, t.live)
	for _, s := range t.slots {
		if s.present {
			packed = append(packed, s)
		}
	}
	t.slots = packed
}

func (t *Table) checkRowUnsafe(index int, op string) error {
	if index < 0 || index >= len(t.slots) || !t.slots[index].present {
		return &errors.IndexError{
			TableName: t.name,
			Kind:      errors.KindRow,
			Index:     index,
			Op:        op,
		}
	}
	return nil
}

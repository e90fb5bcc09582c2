package testutil

import (
	"testing"

	"github.com/leengari/datatable/internal/domain/schema"
)

// AssertRowCount checks if the table has the expected number of rows
func AssertRowCount(t *testing.T, table *schema.Table, expected int, context string) {
	t.Helper()
	if actual := table.RowCount(); actual != expected {
		t.Errorf("%s: expected %d rows, got %d", context, expected, actual)
	}
	if actual := len(table.Rows()); actual != expected {
		t.Errorf("%s: expected Rows() to hold %d rows, got %d", context, expected, actual)
	}
}

// AssertColumnCount checks if the table has the expected number of columns
func AssertColumnCount(t *testing.T, table *schema.Table, expected int, context string) {
	t.Helper()
	if actual := table.ColumnCount(); actual != expected {
		t.Errorf("%s: expected %d columns, got %d", context, expected, actual)
	}
	if actual := len(table.Columns()); actual != expected {
		t.Errorf("%s: expected Columns() to hold %d columns, got %d", context, expected, actual)
	}
}

// AssertCell checks the value stored at (row, column)
func AssertCell(t *testing.T, table *schema.Table, row int, column string, expected interface{}, context string) {
	t.Helper()
	value, ok, err := table.Cell(row, column)
	if err != nil {
		t.Errorf("%s: expected no error reading %s at row %d, got: %v", context, column, row, err)
		return
	}
	if !ok {
		t.Errorf("%s: expected row %d to have key '%s'", context, row, column)
		return
	}
	if value != expected {
		t.Errorf("%s: expected %v at row %d column %s, got %v", context, expected, row, column, value)
	}
}

// AssertNullCell checks that (row, column) holds nil
func AssertNullCell(t *testing.T, table *schema.Table, row int, column string, context string) {
	t.Helper()
	AssertCell(t, table, row, column, nil, context)
}

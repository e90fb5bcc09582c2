package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error classes. Every typed error below reports one of these through Is,
// so callers can branch with errors.Is and still pull details with errors.As.
var (
	ErrColumnNotFound  = errors.New("column not found")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidIndex    = errors.New("invalid index")
	ErrSchemaMismatch  = errors.New("row does not match table columns")
)

// Operation names carried by SchemaMismatchError and IndexError
const (
	OpAdd    = "add"
	OpInsert = "insert"
	OpUpdate = "update"
	OpLoad   = "load"
	OpGet    = "get"
	OpRemove = "remove"
)

// ColumnNotFoundError is returned when an operation references a column
// name the table does not have.
type ColumnNotFoundError struct {
	TableName  string
	ColumnName string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found in table %s", e.ColumnName, tableLabel(e.TableName))
}

func (e *ColumnNotFoundError) Is(target error) bool {
	return target == ErrColumnNotFound
}

// DuplicateColumnError is returned when adding or renaming would introduce
// a column name that already exists.
type DuplicateColumnError struct {
	TableName  string
	ColumnName string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("column %q already exists in table %s", e.ColumnName, tableLabel(e.TableName))
}

func (e *DuplicateColumnError) Is(target error) bool {
	return target == ErrDuplicateColumn
}

// IndexKind tells which axis an index refers to
type IndexKind string

const (
	KindRow    IndexKind = "row"
	KindColumn IndexKind = "column"
)

// IndexError reports a row or column position that does not currently exist.
type IndexError struct {
	TableName string
	Kind      IndexKind
	Index     int
	Op        string // "get", "update", "remove"
}

func (e *IndexError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("%s %d does not exist in table %s", e.Kind, e.Index, tableLabel(e.TableName)))

	if e.Op != "" {
		parts = append(parts, fmt.Sprintf("cannot %s", e.Op))
	}

	return strings.Join(parts, " - ")
}

func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// InvalidIndexError reports a structurally invalid position, such as a
// negative insertion point.
type InvalidIndexError struct {
	TableName string
	Index     int
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("invalid row insert position %d in table %s", e.Index, tableLabel(e.TableName))
}

func (e *InvalidIndexError) Is(target error) bool {
	return target == ErrInvalidIndex
}

// SchemaMismatchError is returned in strict mode when a row's keys are not
// exactly the table's columns.
type SchemaMismatchError struct {
	TableName string
	Op        string   // add, insert, update or load
	Missing   []string // columns the row lacks, in column order
	Extra     []string // keys the row has that are not columns, in row order
	RowIndex  int      // position within a bulk load (-1 if not applicable)
}

func (e *SchemaMismatchError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("cannot %s row in table %s: column configuration is invalid", e.Op, tableLabel(e.TableName)))

	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing=[%s]", strings.Join(e.Missing, ", ")))
	}

	if len(e.Extra) > 0 {
		parts = append(parts, fmt.Sprintf("extra=[%s]", strings.Join(e.Extra, ", ")))
	}

	if e.RowIndex >= 0 {
		parts = append(parts, fmt.Sprintf("at row %d", e.RowIndex))
	}

	return strings.Join(parts, " - ")
}

func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

func tableLabel(name string) string {
	if name == "" {
		return "(unnamed)"
	}
	return name
}

// Package source turns external result sets into rows a table can load.
package source

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/leengari/datatable/internal/domain/data"
	"github.com/leengari/datatable/internal/domain/schema"
)

// Scanner is the part of *sql.Rows that ReadRows needs
type Scanner interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// ReadRows reads every remaining row from sc. Each row's keys follow the
// result set's column order. []byte values are turned into strings since
// drivers reuse the buffer between Scan calls.
func ReadRows(sc Scanner) ([]data.Row, error) {
	columns, err := sc.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	var rows []data.Row
	values := make([]interface{}, len(columns))
	dest := make([]interface{}, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	for sc.Next() {
		if err := sc.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", len(rows), err)
		}

		row := data.NewRow()
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row.Set(col, string(b))
			} else {
				row.Set(col, values[i])
			}
		}
		rows = append(rows, row)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("result set error: %w", err)
	}
	return rows, nil
}

// Load runs query and loads the result into t with LoadRows. An empty
// result set resets the table.
func Load(ctx context.Context, db Querier, t *schema.Table, query string, args ...interface{}) error {
	result, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	defer result.Close()

	rows, err := ReadRows(result)
	if err != nil {
		return err
	}

	if err := t.LoadRows(rows); err != nil {
		return fmt.Errorf("failed to load rows into table %s: %w", t.TableName(), err)
	}

	slog.Debug("query result loaded",
		slog.String("table", t.TableName()),
		slog.Int("rows", len(rows)),
	)
	return nil
}

package testutil

import (
	"io"
	"log/slog"

	"github.com/leengari/datatable/internal/domain/data"
	"github.com/leengari/datatable/internal/domain/schema"
)

// DiscardLogger returns a logger that drops everything
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ABCRows returns three rows over columns a, b, c
func ABCRows() []data.Row {
	return []data.Row{
		data.NewRow(data.Field{Name: "a", Value: 1}, data.Field{Name: "b", Value: 2}, data.Field{Name: "c", Value: 3}),
		data.NewRow(data.Field{Name: "a", Value: 10}, data.Field{Name: "b", Value: 20}, data.Field{Name: "c", Value: 30}),
		data.NewRow(data.Field{Name: "a", Value: 100}, data.Field{Name: "b", Value: 200}, data.Field{Name: "c", Value: 300}),
	}
}

// PeopleRows returns the no/name/age result set used in examples
func PeopleRows() []data.Row {
	return []data.Row{
		data.NewRow(data.Field{Name: "no", Value: 1}, data.Field{Name: "name", Value: "taro"}, data.Field{Name: "age", Value: nil}),
		data.NewRow(data.Field{Name: "no", Value: 2}, data.Field{Name: "name", Value: "jiro"}, data.Field{Name: "age", Value: 20}),
		data.NewRow(data.Field{Name: "no", Value: 3}, data.Field{Name: "name", Value: "saburo"}, data.Field{Name: "age", Value: 30}),
	}
}

// CreateABCTable creates a strict table loaded with ABCRows
func CreateABCTable(name string, opts ...schema.Option) *schema.Table {
	opts = append([]schema.Option{schema.WithLogger(DiscardLogger())}, opts...)
	table := schema.NewTable(name, opts...)
	if err := table.LoadRows(ABCRows()); err != nil {
		panic(err)
	}
	return table
}

// CreatePeopleTable creates a strict table loaded with PeopleRows
func CreatePeopleTable(opts ...schema.Option) *schema.Table {
	opts = append([]schema.Option{schema.WithLogger(DiscardLogger())}, opts...)
	table := schema.NewTable("people", opts...)
	if err := table.LoadRows(PeopleRows()); err != nil {
		panic(err)
	}
	return table
}

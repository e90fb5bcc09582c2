package schema_test

import (
	stderrors "errors"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/datatable/internal/domain/errors"
	"github.com/leengari/datatable/internal/domain/schema"
	"github.com/leengari/datatable/internal/testutil"
)

func TestAddRowStrictMatchesColumnsExactly(t *testing.T) {
	tests := []struct {
		name    string
		keys    []string
		wantErr bool
		missing []string
		extra   []string
	}{
		{name: "exact", keys: []string{"a", "b", "c"}},
		{name: "other order", keys: []string{"c", "a", "b"}},
		{name: "missing", keys: []string{"a", "b"}, wantErr: true, missing: []string{"c"}},
		{name: "extra", keys: []string{"a", "b", "c", "d"}, wantErr: true, extra: []string{"d"}},
		{name: "both", keys: []string{"a", "b", "d"}, wantErr: true, missing: []string{"c"}, extra: []string{"d"}},
		{name: "empty", keys: nil, wantErr: true, missing: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := testutil.CreateABCTable("abc")
			r := row()
			for _, k := range tt.keys {
				r.Set(k, 0)
			}

			err := table.AddRow(r)

			if !tt.wantErr {
				assert.NilError(t, err)
				testutil.AssertRowCount(t, table, 4, tt.name)
				return
			}
			var mismatch *errors.SchemaMismatchError
			assert.Assert(t, stderrors.As(err, &mismatch))
			assert.Equal(t, mismatch.Op, errors.OpAdd)
			assert.DeepEqual(t, mismatch.Missing, tt.missing)
			assert.DeepEqual(t, mismatch.Extra, tt.extra)
			testutil.AssertRowCount(t, table, 3, tt.name)
		})
	}
}

func TestAddRowCopiesInput(t *testing.T) {
	table := testutil.CreateABCTable("abc")
	r := table.NewRow()
	r.Set("a", 7)

	assert.NilError(t, table.AddRow(r))
	r.Set("a", 8)

	testutil.AssertCell(t, table, 3, "a", 7, "stored copy")
}

func TestNewRowTemplate(t *testing.T) {
	table := testutil.CreateABCTable("abc")

	r := table.NewRow()

	assert.DeepEqual(t, r.Keys(), []string{"a", "b", "c"})
	for _, k := range r.Keys() {
		v, ok := r.Get(k)
		assert.Assert(t, ok)
		assert.Assert(t, v == nil)
	}
}

func TestRowReturnsCopy(t *testing.T) {
	table := testutil.CreateABCTable("abc")

	r, err := table.Row(0)
	assert.NilError(t, err)
	r.Set("a", "mutated")
	r.Set("extra", true)

	testutil.AssertCell(t, table, 0, "a", 1, "after mutating returned row")
	stored, err := table.Row(0)
	assert.NilError(t, err)
	assert.Assert(t, !stored.Has("extra"))

	rows := table.Rows()
	rows[1].Delete("b")
	testutil.AssertCell(t, table, 1, "b", 20, "after mutating Rows()")
}

func TestRowOutOfRange(t *testing.T) {
	table := testutil.CreateABCTable("abc")

	for _, index := range []int{-1, 3} {
		_, err := table.Row(index)
		var idxErr *errors.IndexError
		assert.Assert(t, stderrors.As(err, &idxErr))
		assert.Equal(t, idxErr.Kind, errors.KindRow)
		assert.Equal(t, idxErr.Op, errors.OpGet)
	}
}

func TestInsertRowAt(t *testing.T) {
	table := testutil.CreateABCTable("abc")

	assert.NilError(t, table.InsertRowAt(row("a", 5, "b", 6, "c", 7), 1))

	testutil.AssertRowCount(t, table, 4, "after insert")
	testutil.AssertCell(t, table, 0, "a", 1, "before insert point")
	testutil.AssertCell(t, table, 1, "a", 5, "inserted")
	testutil.AssertCell(t, table, 2, "a", 10, "shifted")
	testutil.AssertCell(t, table, 3, "a", 100, "shifted")
}

func TestInsertRowAtClampsPastEnd(t *testing.T) {
	table := testutil.CreateABCTable("abc")

	assert.NilError(t, table.InsertRowAt(row("a", 5, "b", 6, "c", 7), 99))

	testutil.AssertRowCount(t, table, 4, "after insert")
	testutil.AssertCell(t, table, 3, "a", 5, "appended")
	_, err := table.Row(99)
	assert.ErrorIs(t, err, errors.ErrIndexOutOfRange)
}

func TestInsertRowAtNegativeAlwaysFails(t *testing.T) {
	for _, strict := range []bool{true, false} {
		table := testutil.CreateABCTable("abc", schema.WithStrictMode(strict))
		err := table.InsertRowAt(table.NewRow(), -1)
		var invalid *errors.InvalidIndexError
		assert.Assert(t, stderrors.As(err, &invalid))
		assert.Equal(t, invalid.Index, -1)

		// checked before the row shape
		assert.ErrorIs(t, table.InsertRowAt(row("nope", 1), -1), errors.ErrInvalidIndex)
		testutil.AssertRowCount(t, table, 3, "after failed insert")
	}
}

func TestInsertRowAtValidatesShape(t *testing.T) {
	table := testutil.CreateABCTable("abc")

	err := table.InsertRowAt(row("a", 1), 0)

	var mismatch *errors.SchemaMismatchError
	assert.Assert(t, stderrors.As(err, &mismatch))
	assert.Equal(t, mismatch.Op, errors.OpInsert)
	testutil.AssertRowCount(t, table, 3, "after rejected insert")
}

func TestSetRowAt(t *testing.T) {
	table := testutil.CreateABCTable("abc")

	assert.NilError(t, table.SetRowAt(row("c", 9, "b", 8, "a", 7), 1))

	testutil.AssertRowCount(t, table, 3, "after set")
	testutil.AssertCell(t, table, 1, "a", 7, "replaced")
	testutil.AssertCell(t, table, 2, "a", 100, "not shifted")

	err := table.SetRowAt(row("a", 1), 0)
	var mismatch *errors.SchemaMismatchError
	assert.Assert(t, stderrors.As(err, &mismatch))
	assert.Equal(t, mismatch.Op, errors.OpUpdate)
	testutil.AssertCell(t, table, 0, "a", 1, "rejected update")

	err = table.SetRowAt(table.NewRow(), 3)
	var idxErr *errors.IndexError
	assert.Assert(t, stderrors.As(err, &idxErr))
	assert.Equal(t, idxErr.Op, errors.OpUpdate)
}

func TestRemoveRowAtRenumber(t *testing.T) {
	table := testutil.CreateABCTable("abc")

	assert.NilError(t, table.RemoveRowAt(0, true))

	testutil.AssertRowCount(t, table, 2, "after remove")
	for j := 0; j < table.RowCount(); j++ {
		_, err := table.Row(j)
		assert.NilError(t, err)
	}
	testutil.AssertCell(t, table, 0, "a", 10, "renumbered")
	testutil.AssertCell(t, table, 1, "a", 100, "renumbered")
}

func TestRemoveRowAtWithoutRenumberLeavesGap(t *testing.T) {
	table := testutil.CreateABCTable("abc")

	assert.NilError(t, table.RemoveRowAt(1, false))

	testutil.AssertRowCount(t, table, 2, "after sparse remove")
	assert.Assert(t, !table.HasRow(1))
	_, err := table.Row(1)
	assert.ErrorIs(t, err, errors.ErrIndexOutOfRange)
	assert.ErrorIs(t, table.SetRowAt(table.NewRow(), 1), errors.ErrIndexOutOfRange)
	assert.ErrorIs(t, table.RemoveRowAt(1, false), errors.ErrIndexOutOfRange)
	_, _, err = table.Cell(1, "a")
	assert.ErrorIs(t, err, errors.ErrIndexOutOfRange)

	// neighbours keep their positions
	testutil.AssertCell(t, table, 0, "a", 1, "before gap")
	testutil.AssertCell(t, table, 2, "a", 100, "after gap")

	// new rows go after the last position, the gap is not reused
	assert.NilError(t, table.AddRow(row("a", 4, "b", 5, "c", 6)))
	testutil.AssertCell(t, table, 3, "a", 4, "appended")
	assert.Assert(t, !table.HasRow(1))
}

func TestRemoveRowAtRenumberPacksEarlierGaps(t *testing.T) {
	table := testutil.CreateABCTable("abc")

	assert.NilError(t, table.RemoveRowAt(0, false))
	assert.NilError(t, table.RemoveRowAt(2, true))

	testutil.AssertRowCount(t, table, 1, "after removes")
	testutil.AssertCell(t, table, 0, "a", 10, "packed")
}

func TestCompactClosesGaps(t *testing.T) {
	table := testutil.CreateABCTable("abc")
	assert.NilError(t, table.RemoveRowAt(1, false))

	table.Compact()

	testutil.AssertRowCount(t, table, 2, "after compact")
	testutil.AssertCell(t, table, 1, "a", 100, "moved down")
	assert.Assert(t, !table.HasRow(2))
}

func TestInsertRowAtFillsBeforeGap(t *testing.T) {
	table := testutil.CreateABCTable("abc")
	assert.NilError(t, table.RemoveRowAt(1, false))

	assert.NilError(t, table.InsertRowAt(row("a", 5, "b", 6, "c", 7), 1))

	testutil.AssertRowCount(t, table, 3, "after insert")
	testutil.AssertCell(t, table, 1, "a", 5, "inserted")
	assert.Assert(t, !table.HasRow(2), "gap shifted right")
	testutil.AssertCell(t, table, 3, "a", 100, "shifted")
}

func TestClearRowsKeepsColumns(t *testing.T) {
	table := testutil.CreateABCTable("abc")

	table.ClearRows()

	testutil.AssertRowCount(t, table, 0, "after clear")
	assert.DeepEqual(t, table.Columns(), []string{"a", "b", "c"})
	assert.NilError(t, table.AddRow(table.NewRow()))
	testutil.AssertRowCount(t, table, 1, "after add")
}

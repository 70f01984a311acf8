package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNew(t *testing.T, index Index, cols ...Column) *Frame {
	t.Helper()
	f, err := New(index, cols...)
	require.NoError(t, err)
	return f
}

// column pulls a column's values as plain Go values for assertions.
func columnValues(t *testing.T, f *Frame, name string) []any {
	t.Helper()
	c, err := f.Column(name)
	require.NoError(t, err)
	out := make([]any, len(c.Values))
	for i, v := range c.Values {
		out[i] = v.Go()
	}
	return out
}

func TestNew_Invariants(t *testing.T) {
	_, err := New(RangeIndex(),
		Col("a", Int(1), Int(2)),
		Col("a", Int(3), Int(4)),
	)
	require.ErrorIs(t, err, ErrDuplicateColumn)

	_, err = New(NewIndex("", Str("x"), Str("y")),
		Col("a", Int(1)),
	)
	require.ErrorIs(t, err, ErrLengthMismatch)

	f := mustNew(t, RangeIndex(), Col("a", Int(1), Int(2), Int(3)))
	assert.Equal(t, 3, f.RowCount())
	assert.True(t, f.Index().IsRange())
	assert.Equal(t, Int(2), f.Index().Label(2))
}

func TestCol_KindInference(t *testing.T) {
	assert.Equal(t, KindInt, Col("a", Int(1), Missing, Int(2)).Kind)
	assert.Equal(t, KindFloat, Col("a", Int(1), Float(2.5)).Kind)
	assert.Equal(t, KindAny, Col("a", Int(1), Str("x")).Kind)
	assert.Equal(t, KindMissing, Col("a", Missing, Missing).Kind)
}

func TestSelectColumns(t *testing.T) {
	f := mustNew(t, RangeIndex(),
		Col("a", Int(1), Int(2)),
		Col("b", Str("x"), Str("y")),
		Col("c", Float(1.5), Float(2.5)),
	)

	got, err := f.SelectColumns("c", "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, got.ColumnNames())

	_, err = f.SelectColumns("nope")
	require.ErrorIs(t, err, ErrUnknownColumn)

	// Source frame untouched.
	assert.Equal(t, []string{"a", "b", "c"}, f.ColumnNames())
}

func TestDropRowLabel(t *testing.T) {
	f := mustNew(t, NewIndex("country", Str("US"), Str("CA"), Str("US")),
		Col("pop", Int(330), Int(38), Int(331)),
	)

	got, err := f.DropRowLabel(Str("US"))
	require.NoError(t, err)
	assert.Equal(t, 1, got.RowCount())
	assert.Equal(t, []any{int64(38)}, columnValues(t, got, "pop"))

	_, err = f.DropRowLabel(Str("DE"))
	require.ErrorIs(t, err, ErrLabelNotFound)
}

func TestResetAndSetIndex(t *testing.T) {
	f := mustNew(t, NewIndex("country", Str("US"), Str("CA")),
		Col("pop", Int(330), Int(38)),
	)

	reset, err := f.ResetIndex()
	require.NoError(t, err)
	assert.Equal(t, []string{"country", "pop"}, reset.ColumnNames())
	assert.True(t, reset.Index().IsRange())

	back, err := reset.SetIndex("country")
	require.NoError(t, err)
	assert.Equal(t, []string{"pop"}, back.ColumnNames())
	assert.Equal(t, "country", back.Index().Name)
	assert.Equal(t, Str("CA"), back.Index().Label(1))
}

func TestRenameColumns(t *testing.T) {
	f := mustNew(t, RangeIndex(), Col("a", Int(1)), Col("b", Int(2)))

	got, err := f.RenameColumns(map[string]string{"a": "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "b"}, got.ColumnNames())

	_, err = f.RenameColumns(map[string]string{"zz": "x"})
	require.ErrorIs(t, err, ErrUnknownColumn)
}

func TestHead(t *testing.T) {
	f := mustNew(t, RangeIndex(), Col("a", Int(1), Int(2), Int(3)))
	assert.Equal(t, 2, f.Head(2).RowCount())
	assert.Equal(t, 3, f.Head(10).RowCount())
}

func TestValueEqual(t *testing.T) {
	assert.True(t, Int(3).Equal(Float(3.0)))
	assert.False(t, Int(3).Equal(Str("3")))
	assert.False(t, Str("x").Equal(Bool(true)))
	assert.True(t, Missing.Equal(Missing))
	assert.False(t, Missing.Equal(Int(0)))
}

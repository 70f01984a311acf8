package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcat_RowStack(t *testing.T) {
	l := mustNew(t, NewIndex("country", Str("US"), Str("CA")),
		Col("gdp", Float(19.5), Float(1.6)),
		Col("consumption", Float(13.3), Float(0.9)),
	)
	r := mustNew(t, NewIndex("country", Str("US"), Str("RU")),
		Col("sq_miles", Float(3.8), Float(6.6)),
	)

	got, err := Concat(AxisRows, l, r)
	require.NoError(t, err)

	// Row count is the sum of the inputs; columns are the union; labels
	// are kept as-is, including the repeated US.
	assert.Equal(t, l.RowCount()+r.RowCount(), got.RowCount())
	assert.Equal(t, []string{"gdp", "consumption", "sq_miles"}, got.ColumnNames())
	assert.Equal(t, []any{19.5, 1.6, nil, nil}, columnValues(t, got, "gdp"))
	assert.Equal(t, []any{nil, nil, 3.8, 6.6}, columnValues(t, got, "sq_miles"))
	assert.Equal(t, Str("US"), got.Index().Label(0))
	assert.Equal(t, Str("US"), got.Index().Label(2))
}

func TestConcat_RowStackWithSelfDoubles(t *testing.T) {
	f := mustNew(t, NewIndex("", Str("a"), Str("b")),
		Col("x", Int(1), Int(2)),
	)

	got, err := Concat(AxisRows, f, f)
	require.NoError(t, err)
	assert.Equal(t, 4, got.RowCount())
	assert.Equal(t, []any{int64(1), int64(2), int64(1), int64(2)}, columnValues(t, got, "x"))
}

func TestConcat_ColumnStack(t *testing.T) {
	l := mustNew(t, NewIndex("country", Str("US"), Str("CA"), Str("DE")),
		Col("gdp", Float(19.5), Float(1.6), Float(3.7)),
	)
	r := mustNew(t, NewIndex("country", Str("US"), Str("CA"), Str("RU")),
		Col("sq_miles", Float(3.8), Float(3.8), Float(6.6)),
	)

	got, err := Concat(AxisColumns, l, r)
	require.NoError(t, err)

	// Index is the ordered label union; RU appears only on the right, so
	// its gdp cell is missing, and DE's sq_miles likewise.
	assert.Equal(t, 4, got.RowCount())
	assert.Equal(t, []string{"gdp", "sq_miles"}, got.ColumnNames())
	assert.Equal(t, Str("DE"), got.Index().Label(2))
	assert.Equal(t, Str("RU"), got.Index().Label(3))
	assert.Equal(t, []any{19.5, 1.6, 3.7, nil}, columnValues(t, got, "gdp"))
	assert.Equal(t, []any{3.8, 3.8, nil, 6.6}, columnValues(t, got, "sq_miles"))
}

func TestConcat_ColumnStackDuplicateLabel(t *testing.T) {
	l := mustNew(t, NewIndex("", Str("a"), Str("a")), Col("x", Int(1), Int(2)))
	r := mustNew(t, NewIndex("", Str("a")), Col("y", Int(3)))

	_, err := Concat(AxisColumns, l, r)
	require.ErrorIs(t, err, ErrDuplicateLabel)
}

func TestConcat_ColumnStackDuplicateColumn(t *testing.T) {
	l := mustNew(t, NewIndex("", Str("a")), Col("x", Int(1)))
	r := mustNew(t, NewIndex("", Str("a")), Col("x", Int(2)))

	_, err := Concat(AxisColumns, l, r)
	require.ErrorIs(t, err, ErrDuplicateColumn)
}

func TestConcat_LeftFoldThreeInputs(t *testing.T) {
	a := mustNew(t, NewIndex("", Str("a")), Col("x", Int(1)))
	b := mustNew(t, NewIndex("", Str("b")), Col("x", Int(2)))
	c := mustNew(t, NewIndex("", Str("c")), Col("y", Int(3)))

	got, err := Concat(AxisRows, a, b, c)
	require.NoError(t, err)
	assert.Equal(t, 3, got.RowCount())
	assert.Equal(t, []string{"x", "y"}, got.ColumnNames())
	assert.Equal(t, []any{int64(1), int64(2), nil}, columnValues(t, got, "x"))
	assert.Equal(t, []any{nil, nil, int64(3)}, columnValues(t, got, "y"))
}

func TestConcat_NoInputs(t *testing.T) {
	got, err := Concat(AxisRows)
	require.NoError(t, err)
	assert.Equal(t, 0, got.RowCount())
}

func TestParseAxis(t *testing.T) {
	ax, err := ParseAxis("columns")
	require.NoError(t, err)
	assert.Equal(t, AxisColumns, ax)

	ax, err = ParseAxis("0")
	require.NoError(t, err)
	assert.Equal(t, AxisRows, ax)

	_, err = ParseAxis("diagonal")
	require.Error(t, err)
}

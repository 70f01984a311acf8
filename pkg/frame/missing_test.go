package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gappyFrame(t *testing.T) *Frame {
	t.Helper()
	return mustNew(t, RangeIndex(),
		Col("a", Int(1), Missing, Int(3), Int(4)),
		Col("b", Str("x"), Str("y"), Missing, Str("w")),
		Col("c", Int(7), Int(8), Int(9), Int(10)),
	)
}

func TestIsNull(t *testing.T) {
	got := gappyFrame(t).IsNull()

	assert.Equal(t, []any{false, true, false, false}, columnValues(t, got, "a"))
	assert.Equal(t, []any{false, false, true, false}, columnValues(t, got, "b"))
	assert.Equal(t, []any{false, false, false, false}, columnValues(t, got, "c"))
}

func TestNullAny(t *testing.T) {
	f := gappyFrame(t)

	perColumn := f.NullAny(AxisRows)
	assert.Equal(t, 3, perColumn.RowCount())
	assert.Equal(t, Str("a"), perColumn.Index().Label(0))
	assert.Equal(t, []any{true, true, false}, columnValues(t, perColumn, "any_null"))

	perRow := f.NullAny(AxisColumns)
	assert.Equal(t, 4, perRow.RowCount())
	assert.Equal(t, []any{false, true, true, false}, columnValues(t, perRow, "any_null"))
}

func TestDropNull(t *testing.T) {
	got := gappyFrame(t).DropNull()

	assert.Equal(t, 2, got.RowCount())
	assert.Equal(t, []any{int64(1), int64(4)}, columnValues(t, got, "a"))
	assert.Equal(t, Int(0), got.Index().Label(0))
	assert.Equal(t, Int(3), got.Index().Label(1))
}

func TestFillValue(t *testing.T) {
	got := gappyFrame(t).FillValue(Int(100))

	assert.Equal(t, []any{int64(1), int64(100), int64(3), int64(4)}, columnValues(t, got, "a"))
	// Mixed fill widens the column kind.
	b, err := got.Column("b")
	require.NoError(t, err)
	assert.Equal(t, KindAny, b.Kind)
}

func TestFillForwardAndBackward(t *testing.T) {
	f := mustNew(t, RangeIndex(),
		Col("a", Missing, Int(2), Missing, Int(4), Missing),
	)

	fwd := f.FillForward()
	assert.Equal(t, []any{nil, int64(2), int64(2), int64(4), int64(4)}, columnValues(t, fwd, "a"))

	bwd := f.FillBackward()
	assert.Equal(t, []any{int64(2), int64(2), int64(4), int64(4), nil}, columnValues(t, bwd, "a"))
}

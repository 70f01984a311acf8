package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tably-labs/tably/internal/testutil"
	"github.com/tably-labs/tably/pkg/frame"
)

func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func testEngine(t *testing.T) *Engine {
	t.Helper()
	dir := t.TempDir()
	writeCSV(t, dir, "wdi.csv", "country,gdp\nUS,19.5\nCA,1.6\nDE,3.7\n")
	writeCSV(t, dir, "sq_miles.csv", "country,sq_miles\nUS,3.8\nCA,3.8\nRU,6.6\n")
	writeCSV(t, dir, "notes.txt", "not a dataset")

	e := New(Config{DataDir: dir, Logger: testutil.NewTestLogger(t)})
	require.NoError(t, e.LoadDatasets(t.Context()))
	return e
}

func TestLoadDatasets(t *testing.T) {
	e := testEngine(t)

	assert.Equal(t, []string{"sq_miles", "wdi"}, e.List())

	wdi, err := e.Get("wdi")
	require.NoError(t, err)
	assert.Equal(t, 3, wdi.RowCount())

	_, err = e.Get("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dataset")
}

func TestLoadDatasets_MissingDirIsOK(t *testing.T) {
	e := New(Config{DataDir: filepath.Join(t.TempDir(), "absent")})
	require.NoError(t, e.LoadDatasets(t.Context()))
	assert.Empty(t, e.List())
}

func TestEngineMerge(t *testing.T) {
	e := testEngine(t)

	out, err := e.Merge("wdi", "sq_miles", frame.MergeOptions{
		On:  []string{"country"},
		How: frame.HowInner,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.RowCount()) // US and CA only
	assert.Equal(t, []string{"country", "gdp", "sq_miles"}, out.ColumnNames())

	_, err = e.Merge("wdi", "nope", frame.MergeOptions{})
	require.Error(t, err)
}

func TestEngineConcat(t *testing.T) {
	e := testEngine(t)

	out, err := e.Concat(frame.AxisRows, "wdi", "sq_miles")
	require.NoError(t, err)
	assert.Equal(t, 6, out.RowCount())
	assert.Equal(t, []string{"country", "gdp", "sq_miles"}, out.ColumnNames())
}

func TestEngineJoin(t *testing.T) {
	e := testEngine(t)

	// Give the right side a country index, as df.join expects.
	sq, err := e.Get("sq_miles")
	require.NoError(t, err)
	indexed, err := sq.SetIndex("country")
	require.NoError(t, err)
	e.Put("sq_indexed", indexed)

	out, err := e.Join("wdi", "sq_indexed", frame.HowLeft, "country")
	require.NoError(t, err)
	assert.Equal(t, 3, out.RowCount())
	sqCol, err := out.Column("sq_miles")
	require.NoError(t, err)
	assert.True(t, sqCol.Values[2].IsMissing()) // DE has no area row
}

func TestPutAndDrop(t *testing.T) {
	e := New(Config{})
	f, err := frame.New(frame.RangeIndex(), frame.Col("x", frame.Int(1)))
	require.NoError(t, err)

	e.Put("tmp", f)
	assert.Equal(t, []string{"tmp"}, e.List())

	e.Drop("tmp")
	assert.Empty(t, e.List())
}

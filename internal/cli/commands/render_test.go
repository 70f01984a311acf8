package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tably-labs/tably/pkg/frame"
)

func renderFixture(t *testing.T) *frame.Frame {
	t.Helper()
	f, err := frame.New(
		frame.NewIndex("country", frame.Str("US"), frame.Str("FR")),
		frame.Col("pop", frame.Int(331), frame.Missing),
		frame.Col("code", frame.Str("us"), frame.Str("fr")),
	)
	require.NoError(t, err)
	return f
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	err := renderFrame(&buf, renderFixture(t), renderOptions{Format: "table", NullText: "<NA>"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "COUNTRY")
	assert.Contains(t, out, "US")
	assert.Contains(t, out, "331")
	assert.Contains(t, out, "<NA>")
	assert.Contains(t, out, "(2 rows)")
}

func TestRenderTableEmpty(t *testing.T) {
	f, err := frame.New(frame.RangeIndex(), frame.Col("a"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderFrame(&buf, f, renderOptions{Format: "table"}))
	assert.Equal(t, "(0 rows)\n", buf.String())
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	err := renderFrame(&buf, renderFixture(t), renderOptions{Format: "json"})
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)

	assert.Equal(t, "US", rows[0]["country"])
	assert.Equal(t, float64(331), rows[0]["pop"])
	assert.Nil(t, rows[1]["pop"])
}

func TestRenderJSONRangeIndexOmitsLabels(t *testing.T) {
	f, err := frame.New(frame.RangeIndex(), frame.Col("a", frame.Int(1)))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderFrame(&buf, f, renderOptions{Format: "json"}))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.NotContains(t, rows[0], "index")
}

func TestRenderCSV(t *testing.T) {
	var buf bytes.Buffer
	err := renderFrame(&buf, renderFixture(t), renderOptions{Format: "csv", NullText: ""})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "country,pop,code", lines[0])
	assert.Equal(t, "US,331,us", lines[1])
	assert.Equal(t, "FR,,fr", lines[2])
}

func TestRenderCSVEscaping(t *testing.T) {
	f, err := frame.New(frame.RangeIndex(), frame.Col("note", frame.Str(`hello, "world"`)))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderFrame(&buf, f, renderOptions{Format: "csv"}))
	assert.Contains(t, buf.String(), `"hello, ""world"""`)
}

func TestRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	err := renderFrame(&buf, renderFixture(t), renderOptions{Format: "md", NullText: "<NA>"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "| country | pop | code |", lines[0])
	assert.Equal(t, "| --- | --- | --- |", lines[1])
	assert.Equal(t, "| FR | <NA> | fr |", lines[3])
}

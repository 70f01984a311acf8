package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/tably-labs/tably/pkg/frame"
)

// renderOptions controls how a frame is written out.
type renderOptions struct {
	Format   string // table, json, csv, md
	NullText string // placeholder for missing cells
}

// renderFrame writes a frame in the requested format. The row labels are
// emitted as a leading column headed by the index name (blank for the
// default range index, mirroring how pandas prints frames).
func renderFrame(w io.Writer, f *frame.Frame, opts renderOptions) error {
	switch opts.Format {
	case "json":
		return renderJSON(w, f)
	case "csv":
		return renderCSV(w, f, opts.NullText)
	case "md", "markdown":
		return renderMarkdown(w, f, opts.NullText)
	default:
		return renderTable(w, f, opts.NullText)
	}
}

// indexHeader names the label column in rendered output. Unnamed and
// range indexes get a blank header.
func indexHeader(f *frame.Frame) string {
	return f.Index().Name
}

func cellText(v frame.Value, nullText string) string {
	if v.IsMissing() {
		return nullText
	}
	return v.String()
}

func renderTable(w io.Writer, f *frame.Frame, nullText string) error {
	if f.RowCount() == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	cols := f.Columns()
	headerRow := make(table.Row, 0, len(cols)+1)
	headerRow = append(headerRow, indexHeader(f))
	for _, c := range cols {
		headerRow = append(headerRow, c.Name)
	}
	t.AppendHeader(headerRow)

	for i := 0; i < f.RowCount(); i++ {
		row := make(table.Row, 0, len(cols)+1)
		row = append(row, cellText(f.Index().Label(i), nullText))
		for _, c := range cols {
			row = append(row, cellText(c.Values[i], nullText))
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", f.RowCount())
	return nil
}

// renderJSON emits one object per row. The row label is included under
// the index name ("index" when unnamed) only when the frame carries an
// explicit index.
func renderJSON(w io.Writer, f *frame.Frame) error {
	labelKey := ""
	if !f.Index().IsRange() {
		labelKey = f.Index().Name
		if labelKey == "" {
			labelKey = "index"
		}
	}

	results := make([]map[string]any, 0, f.RowCount())
	for i := 0; i < f.RowCount(); i++ {
		row := make(map[string]any, f.NumColumns()+1)
		if labelKey != "" {
			row[labelKey] = f.Index().Label(i).Go()
		}
		for _, c := range f.Columns() {
			row[c.Name] = c.Values[i].Go()
		}
		results = append(results, row)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func renderCSV(w io.Writer, f *frame.Frame, nullText string) error {
	names := make([]string, 0, f.NumColumns()+1)
	names = append(names, indexHeader(f))
	names = append(names, f.ColumnNames()...)
	_, _ = fmt.Fprintln(w, strings.Join(names, ","))

	for i := 0; i < f.RowCount(); i++ {
		values := make([]string, 0, len(names))
		values = append(values, escapeCSV(cellText(f.Index().Label(i), nullText)))
		for _, c := range f.Columns() {
			values = append(values, escapeCSV(cellText(c.Values[i], nullText)))
		}
		_, _ = fmt.Fprintln(w, strings.Join(values, ","))
	}
	return nil
}

func renderMarkdown(w io.Writer, f *frame.Frame, nullText string) error {
	if f.RowCount() == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	names := make([]string, 0, f.NumColumns()+1)
	names = append(names, indexHeader(f))
	names = append(names, f.ColumnNames()...)
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(names, " | "))

	seps := make([]string, len(names))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	for i := 0; i < f.RowCount(); i++ {
		values := make([]string, 0, len(names))
		values = append(values, cellText(f.Index().Label(i), nullText))
		for _, c := range f.Columns() {
			values = append(values, cellText(c.Values[i], nullText))
		}
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(values, " | "))
	}
	return nil
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

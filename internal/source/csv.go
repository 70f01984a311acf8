package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/tably-labs/tably/pkg/frame"
)

func init() {
	Register("csv", func(logger *slog.Logger) Source {
		return &csvSource{logger: logger}
	})
}

// csvSource reads delimited-text files. The first record is the header;
// empty cells become Missing. Column kinds come from the schema when one
// is declared, otherwise from inference (int, then float, then string).
type csvSource struct {
	logger *slog.Logger
}

func (s *csvSource) Name() string { return "csv" }

func (s *csvSource) Load(ctx context.Context, locator string, opts LoadOptions) (*frame.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(locator)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", locator, err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", locator, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file, expected a header record", locator)
	}
	header := records[0]
	rows := records[1:]

	schema := opts.Schema
	if schema == nil {
		if schema, err = sidecarSchema(locator); err != nil {
			return nil, err
		}
		if schema != nil {
			s.logger.Debug("using sidecar schema", "path", locator)
		}
	}

	cols := make([]frame.Column, len(header))
	for ci, name := range header {
		raw := make([]string, len(rows))
		for ri, rec := range rows {
			if ci < len(rec) {
				raw[ri] = rec[ci]
			}
		}

		declared, pinned, err := schema.Kind(name)
		if err != nil {
			return nil, err
		}
		var col frame.Column
		if pinned {
			col, err = typedColumn(name, raw, declared)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", locator, err)
			}
		} else {
			col = inferColumn(name, raw)
		}
		cols[ci] = col
	}

	s.logger.Debug("loaded csv",
		"path", locator, "rows", len(rows), "columns", len(header))

	f, err := frame.New(frame.RangeIndex(), cols...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", locator, err)
	}
	return applyIndex(f, opts)
}

// inferColumn picks the narrowest kind that parses every non-empty cell:
// int, then float, then string.
func inferColumn(name string, raw []string) frame.Column {
	isInt, isFloat := true, true
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if isInt {
			if _, err := strconv.ParseInt(s, 10, 64); err != nil {
				isInt = false
			}
		}
		if !isInt && isFloat {
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				isFloat = false
			}
		}
	}

	kind := frame.KindString
	switch {
	case isInt:
		kind = frame.KindInt
	case isFloat:
		kind = frame.KindFloat
	}
	col, _ := typedColumn(name, raw, kind)
	return col
}

// typedColumn parses cells under a declared kind. Empty cells become
// Missing; a cell that does not parse is an error (declared schemas are
// strict).
func typedColumn(name string, raw []string, kind frame.Kind) (frame.Column, error) {
	vals := make([]frame.Value, len(raw))
	for i, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			vals[i] = frame.Missing
			continue
		}
		v, err := parseCell(s, kind)
		if err != nil {
			return frame.Column{}, fmt.Errorf("column %q, row %d: %w", name, i, err)
		}
		vals[i] = v
	}
	return frame.Column{Name: name, Kind: kind, Values: vals}, nil
}

func parseCell(s string, kind frame.Kind) (frame.Value, error) {
	switch kind {
	case frame.KindBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return frame.Missing, fmt.Errorf("%q is not a bool", s)
		}
		return frame.Bool(b), nil
	case frame.KindInt:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return frame.Missing, fmt.Errorf("%q is not an int", s)
		}
		return frame.Int(n), nil
	case frame.KindFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return frame.Missing, fmt.Errorf("%q is not a float", s)
		}
		return frame.Float(f), nil
	default:
		return frame.Str(s), nil
	}
}

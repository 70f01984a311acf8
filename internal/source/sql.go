package source

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/tably-labs/tably/pkg/frame"
)

// sqlSource loads a table or query result from a database/sql driver.
// The concrete sources (sqlite, duckdb, postgres) differ only in driver
// name and DSN construction.
type sqlSource struct {
	name   string
	driver string
	dsn    func(locator string) string
	logger *slog.Logger
}

func (s *sqlSource) Name() string { return s.name }

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func (s *sqlSource) Load(ctx context.Context, locator string, opts LoadOptions) (*frame.Frame, error) {
	query := opts.Query
	if query == "" {
		if opts.Table == "" {
			return nil, fmt.Errorf("%s source needs a table or query for %s", s.name, locator)
		}
		if !identPattern.MatchString(opts.Table) {
			return nil, fmt.Errorf("invalid table name %q", opts.Table)
		}
		query = fmt.Sprintf("SELECT * FROM %q", opts.Table)
	}

	db, err := sql.Open(s.driver, s.dsn(locator))
	if err != nil {
		return nil, fmt.Errorf("opening %s database %s: %w", s.name, locator, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("connecting to %s database %s: %w", s.name, locator, err)
	}

	s.logger.Debug("querying", "source", s.name, "locator", locator, "query", query)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", locator, err)
	}
	defer func() { _ = rows.Close() }()

	f, err := scanFrame(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", locator, err)
	}
	return applyIndex(f, opts)
}

// scanFrame converts sql.Rows into a frame. SQL NULL becomes Missing;
// []byte columns are treated as text.
func scanFrame(rows *sql.Rows) (*frame.Frame, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading column names: %w", err)
	}

	colVals := make([][]frame.Value, len(names))
	for rows.Next() {
		values := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		for i, v := range values {
			colVals[i] = append(colVals[i], sqlValue(v))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	cols := make([]frame.Column, len(names))
	for i, name := range names {
		cols[i] = frame.Col(name, colVals[i]...)
	}
	return frame.New(frame.RangeIndex(), cols...)
}

func sqlValue(v any) frame.Value {
	switch x := v.(type) {
	case nil:
		return frame.Missing
	case bool:
		return frame.Bool(x)
	case int64:
		return frame.Int(x)
	case float64:
		return frame.Float(x)
	case []byte:
		return frame.Str(string(x))
	case string:
		return frame.Str(x)
	default:
		return frame.Str(fmt.Sprint(x))
	}
}

package source

import (
	"log/slog"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

func init() {
	Register("duckdb", func(logger *slog.Logger) Source {
		return &sqlSource{
			name:   "duckdb",
			driver: "duckdb",
			dsn:    func(locator string) string { return locator },
			logger: logger,
		}
	})
}

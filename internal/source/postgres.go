package source

import (
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
)

func init() {
	Register("postgres", func(logger *slog.Logger) Source {
		return &sqlSource{
			name:   "postgres",
			driver: "pgx",
			dsn:    func(locator string) string { return locator },
			logger: logger,
		}
	})
}

package source

import (
	"log/slog"

	_ "modernc.org/sqlite" // sqlite driver
)

func init() {
	Register("sqlite", func(logger *slog.Logger) Source {
		return &sqlSource{
			name:   "sqlite",
			driver: "sqlite",
			dsn:    func(locator string) string { return locator },
			logger: logger,
		}
	})
}

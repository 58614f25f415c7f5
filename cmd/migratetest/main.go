package main

import (
	"context"
	"github.com/intinc/platformexplorer/internal/errors"
	"github.com/intinc/platformexplorer/internal/sqlite"
	"github.com/intinc/platformexplorer/internal/testhelpers"
	"log/slog"
	"os"
	"time"
)

// tables must exist after the schema has been applied to the database.
var tables = []string{"sessions", "users", "credentials"}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	var (
		err       error
		start     = time.Now()
		ctx       context.Context
		sqliteURL string
		ok        bool
		cancel    context.CancelFunc
	)
	ctx = context.Background()
	ctx, cancel = context.WithTimeout(ctx, 5*time.Second) //nolint:mnd // 5 seconds

	if sqliteURL, ok = os.LookupEnv("PLATFORMEXPLORER_SQLITE_URL"); !ok {
		logger.LogAttrs(ctx, slog.LevelError, "PLATFORMEXPLORER_SQLITE_URL not set")
		os.Exit(1)
	}

	var db *sqlite.Database
	if db, err = sqlite.NewDatabase(ctx, sqliteURL, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating database",
			slog.String("url", sqliteURL), errors.SlogError(err))
		os.Exit(1)
	}

	// Row counts before and after a deploy reveal a migration that dropped data.
	for _, table := range tables {
		var count int
		if err = db.ReadOnly.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+table); err != nil {
			logger.LogAttrs(ctx, slog.LevelError, "error counting rows",
				slog.String("table", table), errors.SlogError(err))
			os.Exit(1)
		}
		logger.LogAttrs(ctx, slog.LevelInfo, "row count", slog.String("table", table), slog.Int("count", count))
	}

	if err = db.Close(); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error closing database", errors.SlogError(err))
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "Migration test successful 🙌", slog.Duration("duration", time.Since(start)))
	cancel()
	os.Exit(0)
}

package app

import (
	"context"

	"spacexdash/internal"
	"spacexdash/internal/errors"
	"spacexdash/internal/migration"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// OpenDatabase connects to PostgreSQL and brings the launches schema up to date
func OpenDatabase(ctx context.Context, url string) (*sqlx.DB, error) {
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to database", err)
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(ctx, db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "database migration failed")
	}

	internal.DefaultLogger.With("Database").Info("Schema at version %s", migrator.Version())
	return db, nil
}

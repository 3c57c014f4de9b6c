package migration

import (
	"context"

	"spacexdash/internal/errors"

	"github.com/jmoiron/sqlx"
)

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.1.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in order. Every step is idempotent.
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createLaunchesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create launches table")
	}

	if err := r.addBoosterCategoryColumn(ctx, db); err != nil {
		return errors.Wrap(err, "failed to add booster_category column")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createLaunchesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS launches (
			id BIGSERIAL PRIMARY KEY,
			flight_number INTEGER,
			launch_site TEXT NOT NULL,
			payload_mass_kg DOUBLE PRECISION NOT NULL,
			class SMALLINT NOT NULL CHECK (class IN (0, 1)),
			booster_version TEXT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

// addBoosterCategoryColumn upgrades 1.0.0 schemas, which predate the category column
func (r *MigrationRunner) addBoosterCategoryColumn(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM information_schema.columns
				WHERE table_name = 'launches' AND column_name = 'booster_category'
			) THEN
				ALTER TABLE launches ADD COLUMN booster_category TEXT;
			END IF;
		END $$;
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_launches_site ON launches(launch_site);
		CREATE INDEX IF NOT EXISTS idx_launches_payload ON launches(payload_mass_kg);
	`)
	return err
}

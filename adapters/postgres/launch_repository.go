package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"spacexdash/domain/launch"
	"spacexdash/internal/errors"
	"spacexdash/ports"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// launchRow mirrors the launches table
type launchRow struct {
	ID              int64          `db:"id"`
	FlightNumber    sql.NullInt64  `db:"flight_number"`
	LaunchSite      string         `db:"launch_site"`
	PayloadMassKg   float64        `db:"payload_mass_kg"`
	Class           int            `db:"class"`
	BoosterVersion  string         `db:"booster_version"`
	BoosterCategory sql.NullString `db:"booster_category"`
}

func (r launchRow) toRecord() launch.Record {
	return launch.Record{
		FlightNumber:    int(r.FlightNumber.Int64),
		LaunchSite:      r.LaunchSite,
		PayloadMassKg:   r.PayloadMassKg,
		Class:           r.Class,
		BoosterVersion:  r.BoosterVersion,
		BoosterCategory: r.BoosterCategory.String,
	}
}

// copyValues orders a record's columns as copyColumns expects
func copyValues(rec launch.Record) []interface{} {
	flight := sql.NullInt64{Int64: int64(rec.FlightNumber), Valid: rec.FlightNumber != 0}
	category := sql.NullString{String: rec.BoosterCategory, Valid: rec.BoosterCategory != ""}
	return []interface{}{flight, rec.LaunchSite, rec.PayloadMassKg, rec.Class, rec.BoosterVersion, category}
}

var copyColumns = []string{"flight_number", "launch_site", "payload_mass_kg", "class", "booster_version", "booster_category"}

// LaunchRepository reads and replaces the launches table
type LaunchRepository struct {
	db *sqlx.DB
}

var _ ports.LaunchStore = (*LaunchRepository)(nil)

// NewLaunchRepository creates a new PostgreSQL launch repository
func NewLaunchRepository(db *sqlx.DB) *LaunchRepository {
	return &LaunchRepository{db: db}
}

// Name describes the source for logs and the health endpoint
func (r *LaunchRepository) Name() string {
	return "postgres:launches"
}

// Load returns every launch in insertion order
func (r *LaunchRepository) Load(ctx context.Context) ([]launch.Record, error) {
	var rows []launchRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, flight_number, launch_site, payload_mass_kg, class, booster_version, booster_category
		FROM launches
		ORDER BY id
	`)
	if err != nil {
		return nil, errors.DatabaseError("failed to load launches", err)
	}

	records := make([]launch.Record, len(rows))
	for i, row := range rows {
		records[i] = row.toRecord()
	}
	return records, nil
}

// ReplaceAll swaps the table contents for records in one transaction using COPY
func (r *LaunchRepository) ReplaceAll(ctx context.Context, records []launch.Record) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, errors.DatabaseError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `TRUNCATE launches RESTART IDENTITY`); err != nil {
		return 0, errors.DatabaseError("failed to clear launches", err)
	}

	stmt, err := tx.PreparexContext(ctx, pq.CopyIn("launches", copyColumns...))
	if err != nil {
		return 0, errors.DatabaseError("failed to prepare copy", err)
	}

	for i, rec := range records {
		if _, err := stmt.ExecContext(ctx, copyValues(rec)...); err != nil {
			stmt.Close()
			return 0, errors.DatabaseError(fmt.Sprintf("failed to copy launch %d", i+1), err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return 0, errors.DatabaseError("failed to flush copy", err)
	}
	if err := stmt.Close(); err != nil {
		return 0, errors.DatabaseError("failed to close copy", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.DatabaseError("failed to commit launches", err)
	}
	return len(records), nil
}

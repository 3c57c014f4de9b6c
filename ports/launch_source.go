package ports

import (
	"context"

	"spacexdash/domain/launch"
)

// LaunchSource loads the launch table once at startup.
// Implementations: adapters/excel (CSV/XLSX files), adapters/postgres,
// and the testkit synthetic generator.
type LaunchSource interface {
	Name() string
	Load(ctx context.Context) ([]launch.Record, error)
}

// LaunchStore is a source whose contents can be replaced wholesale
type LaunchStore interface {
	LaunchSource
	ReplaceAll(ctx context.Context, records []launch.Record) (int, error)
}

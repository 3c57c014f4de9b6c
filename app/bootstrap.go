package app

import (
	"context"
	"fmt"
	"time"

	"spacexdash/adapters/excel"
	"spacexdash/adapters/postgres"
	"spacexdash/domain/launch"
	"spacexdash/internal"
	"spacexdash/internal/aggregate"
	"spacexdash/internal/config"
	"spacexdash/internal/dataset"
	"spacexdash/internal/errors"
	"spacexdash/internal/testkit"
	"spacexdash/ports"

	"github.com/jmoiron/sqlx"
)

// NewLaunchSource picks the configured dataset source. db is only used for
// DATA_SOURCE=postgres and may be nil otherwise.
func NewLaunchSource(cfg *config.Config, db *sqlx.DB) (ports.LaunchSource, error) {
	switch cfg.Data.Source {
	case config.SourceFile:
		return excel.NewFileSource(FileConfig(cfg)), nil
	case config.SourcePostgres:
		if db == nil {
			return nil, errors.ConfigInvalid("postgres source requires a database connection")
		}
		return postgres.NewLaunchRepository(db), nil
	case config.SourceSynthetic:
		gen := testkit.DefaultGeneratorConfig()
		gen.Rows = cfg.Data.SyntheticRows
		gen.Seed = cfg.Data.SyntheticSeed
		return testkit.NewSyntheticSource(gen), nil
	default:
		return nil, errors.ConfigInvalid(fmt.Sprintf("unknown data source %q", cfg.Data.Source))
	}
}

// FileConfig overlays the configured file and sheet on the excel defaults
func FileConfig(cfg *config.Config) excel.ExcelConfig {
	ec := excel.DefaultExcelConfig()
	if cfg.Data.File != "" {
		ec.FilePath = cfg.Data.File
	}
	if cfg.Data.Sheet != "" {
		ec.Sheet = cfg.Data.Sheet
	}
	return ec
}

// LoadDataset reads the source once and freezes it into a dataset handle
func LoadDataset(ctx context.Context, source ports.LaunchSource) (*dataset.Dataset, error) {
	logger := internal.DefaultLogger.With("Loader")
	start := time.Now()

	records, err := source.Load(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load launches from %s", source.Name())
	}

	ds, err := dataset.New(source.Name(), records)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid launch data from %s", source.Name())
	}

	logger.Info("Loaded %d launches across %d sites from %s in %s (fingerprint %s)",
		ds.Len(), len(ds.Sites()), source.Name(), time.Since(start).Round(time.Millisecond), ds.Fingerprint().Short())
	return ds, nil
}

// NewDashboard wires a dataset into the service the HTTP layers consume
func NewDashboard(ds *dataset.Dataset, cfg *config.Config) *DashboardService {
	initial := launch.PayloadRange{
		Low:  cfg.Dashboard.DefaultPayloadLow,
		High: cfg.Dashboard.DefaultPayloadHigh,
	}
	return NewDashboardService(aggregate.NewAggregator(ds), initial)
}

// ImportLaunches validates the rows of source and replaces the contents of
// store with them. Nothing is written when validation fails.
func ImportLaunches(ctx context.Context, source ports.LaunchSource, store ports.LaunchStore) (*dataset.Dataset, int, error) {
	ds, err := LoadDataset(ctx, source)
	if err != nil {
		return nil, 0, err
	}

	n, err := store.ReplaceAll(ctx, ds.Records())
	if err != nil {
		return nil, 0, errors.Wrapf(err, "failed to import launches into %s", store.Name())
	}

	internal.DefaultLogger.With("Import").Info("Imported %d launches from %s into %s", n, source.Name(), store.Name())
	return ds, n, nil
}

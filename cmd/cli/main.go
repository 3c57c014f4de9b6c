package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"spacexdash/app"
	"spacexdash/internal"
	"spacexdash/internal/config"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

// globalFlags override the loaded configuration for one invocation
type globalFlags struct {
	source   string
	file     string
	sheet    string
	logLevel string
}

func main() {
	godotenv.Load()

	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:           "spacexdash-cli",
		Short:         "Query and manage SpaceX launch records from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&flags.source, "data-source", "", "Override DATA_SOURCE (file, postgres, synthetic)")
	rootCmd.PersistentFlags().StringVar(&flags.file, "data-file", "", "Override DATA_FILE")
	rootCmd.PersistentFlags().StringVar(&flags.sheet, "sheet", "", "Override DATA_SHEET for .xlsx files")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override LOG_LEVEL")

	rootCmd.AddCommand(
		newChartsCmd(&flags),
		newSitesCmd(&flags),
		newSummaryCmd(&flags),
		newGenerateCmd(),
		newImportCmd(&flags),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies command line overrides
func loadConfig(flags *globalFlags) (*config.Config, error) {
	if flags.source != "" {
		os.Setenv("DATA_SOURCE", flags.source)
	}
	if flags.file != "" {
		os.Setenv("DATA_FILE", flags.file)
	}
	if flags.sheet != "" {
		os.Setenv("DATA_SHEET", flags.sheet)
	}
	if flags.logLevel != "" {
		os.Setenv("LOG_LEVEL", flags.logLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	internal.DefaultLogger.SetLevel(internal.ParseLogLevel(cfg.LogLevel))
	return cfg, nil
}

// openDashboard loads the configured dataset into a dashboard service
func openDashboard(ctx context.Context, flags *globalFlags) (*app.DashboardService, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}

	var db *sqlx.DB
	if cfg.Data.Source == config.SourcePostgres {
		if db, err = app.OpenDatabase(ctx, cfg.Database.URL); err != nil {
			return nil, err
		}
		defer db.Close()
	}

	source, err := app.NewLaunchSource(cfg, db)
	if err != nil {
		return nil, err
	}
	ds, err := app.LoadDataset(ctx, source)
	if err != nil {
		return nil, err
	}
	return app.NewDashboard(ds, cfg), nil
}

// printJSON writes v as indented JSON. A non-empty query is a gjson path
// applied to the document first, e.g. "pie.slices.#.value".
func printJSON(w io.Writer, v interface{}, query string) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	if query == "" {
		_, err = fmt.Fprintln(w, string(jsonData))
		return err
	}

	result := gjson.GetBytes(jsonData, query)
	if !result.Exists() {
		return fmt.Errorf("query %q matched nothing", query)
	}
	_, err = fmt.Fprintln(w, result.String())
	return err
}

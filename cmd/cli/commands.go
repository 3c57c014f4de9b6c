package main

import (
	"fmt"
	"os"

	"spacexdash/adapters/excel"
	"spacexdash/adapters/postgres"
	"spacexdash/app"
	"spacexdash/internal/testkit"
	"spacexdash/ports"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// selectionFlags are shared by charts and summary
type selectionFlags struct {
	site  string
	low   string
	high  string
	query string
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.site, "site", "", "Launch site, empty for All Sites")
	cmd.Flags().StringVar(&f.low, "low", "", "Lower payload bound in kg (exclusive)")
	cmd.Flags().StringVar(&f.high, "high", "", "Upper payload bound in kg (exclusive)")
	cmd.Flags().StringVar(&f.query, "query", "", "gjson path to extract from the result")
}

func newChartsCmd(flags *globalFlags) *cobra.Command {
	var sel selectionFlags

	cmd := &cobra.Command{
		Use:   "charts",
		Short: "Compute the pie chart, label and scatter chart for a selection",
		Long: `Compute the dashboard charts for a site and payload range.

Example: spacexdash-cli charts --site "KSC LC-39A" --low 2000 --high 8000 --query pie.slices`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dashboard, err := openDashboard(cmd.Context(), flags)
			if err != nil {
				return err
			}
			selection, err := dashboard.ParseSelection(sel.site, sel.low, sel.high)
			if err != nil {
				return err
			}
			charts, err := dashboard.Charts(selection)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), charts, sel.query)
		},
	}
	sel.register(cmd)
	return cmd
}

func newSummaryCmd(flags *globalFlags) *cobra.Command {
	var sel selectionFlags

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Payload statistics and per-site success rates for a selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dashboard, err := openDashboard(cmd.Context(), flags)
			if err != nil {
				return err
			}
			selection, err := dashboard.ParseSelection(sel.site, sel.low, sel.high)
			if err != nil {
				return err
			}
			summary, err := dashboard.Summary(selection)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), summary, sel.query)
		},
	}
	sel.register(cmd)
	return cmd
}

func newSitesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "sites",
		Short: "List the site dropdown options and payload slider settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dashboard, err := openDashboard(cmd.Context(), flags)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, opt := range dashboard.SiteOptions() {
				fmt.Fprintln(out, opt.Value)
			}

			controls := dashboard.RangeControls()
			fmt.Fprintf(out, "\nPayload slider: %s kg to %s kg, step %s kg\n",
				humanize.Commaf(controls.Min), humanize.Commaf(controls.Max), humanize.Ftoa(controls.Step))
			return nil
		},
	}
}

func newGenerateCmd() *cobra.Command {
	var out, sheet, profile string
	var rows int
	var seed int64

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic launch dataset to .csv or .xlsx",
		Long: `Generate a deterministic launch manifest.

--profile takes a YAML file with a "sites" list of {name, weight, success_bias}
to replace the default four launch pads.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := testkit.DefaultGeneratorConfig()
			if profile != "" {
				raw, err := os.ReadFile(profile)
				if err != nil {
					return fmt.Errorf("failed to read profile: %w", err)
				}
				if err := yaml.Unmarshal(raw, &cfg); err != nil {
					return fmt.Errorf("invalid profile %s: %w", profile, err)
				}
			}
			if cmd.Flags().Changed("rows") || profile == "" {
				cfg.Rows = rows
			}
			if cmd.Flags().Changed("seed") || profile == "" {
				cfg.Seed = seed
			}

			records, err := testkit.GenerateRecords(cfg)
			if err != nil {
				return err
			}
			if err := excel.WriteRecords(out, sheet, records); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d launches to %s\n", len(records), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "spacex_launch_dash.csv", "Output file (.csv or .xlsx)")
	cmd.Flags().StringVar(&sheet, "sheet", excel.DefaultSheet, "Worksheet name for .xlsx output")
	cmd.Flags().StringVar(&profile, "profile", "", "YAML generator profile")
	cmd.Flags().IntVar(&rows, "rows", 56, "Number of launches")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic output")
	return cmd
}

func newImportCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Replace the launches table with the rows of a .csv or .xlsx file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.file = args[0]
			}
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			db, err := app.OpenDatabase(ctx, cfg.Database.URL)
			if err != nil {
				return err
			}
			defer db.Close()

			var store ports.LaunchStore = postgres.NewLaunchRepository(db)
			ds, n, err := app.ImportLaunches(ctx, excel.NewFileSource(app.FileConfig(cfg)), store)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d launches (fingerprint %s)\n", n, ds.Fingerprint().Short())
			return nil
		},
	}
	return cmd
}

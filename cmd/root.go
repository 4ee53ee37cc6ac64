// =============================================================================
// Bike Sharing Dashboard - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI and the start-up
// sequence shared by every subcommand.
//
// COBRA CLI STRUCTURE:
//   rootCmd (bikedash)
//   ├── serveCmd   (bikedash serve)
//   ├── reportCmd  (bikedash report)
//   ├── summaryCmd (bikedash summary)
//   └── versionCmd (bikedash version)
//
// START-UP SEQUENCE (serve, report, summary):
//   1. Load the configuration (config.yaml, .env, BIKEDASH_* variables)
//   2. Set up the slog logger
//   3. Load and preprocess the dataset; a missing file stops here, before
//      anything is rendered or served
//
// =============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/bike-sharing-dashboard/internal/config"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/csvparser"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/dashboard"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/dataset"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// dataFile overrides data.file from the configuration.
var dataFile string

// verbose forces debug logging.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "bikedash",
	Short: "Bike Sharing Dashboard - Explore daily bike rentals by season and day",
	Long: `Bike Sharing Dashboard loads a daily bike-rental dataset (the UCI day.csv
layout) and lets you filter it by date range, rental count and season. It
shows summary statistics, the average rentals per season and per day type,
and three charts.

Example Usage:
  bikedash serve                          # Interactive dashboard on :8501
  bikedash summary --season 2             # Summer tables in the terminal
  bikedash report --png --xlsx            # Static HTML, PNG charts and a workbook
  bikedash serve --data ./data/day.csv    # Use another dataset`,

	SilenceUsage:  true,
	SilenceErrors: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI. It is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file (optional unless set explicitly)",
	)

	rootCmd.PersistentFlags().StringVar(
		&dataFile,
		"data",
		"",
		"Path to the rental CSV (overrides data.file)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// START-UP
// =============================================================================

// app is everything a subcommand needs after start-up.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	builder *dashboard.Builder
	close   func() error
}

// setup runs the start-up sequence. The caller must call app.close.
func setup(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(cfgFile, cmd.Flags().Changed("config"))
	if err != nil {
		return nil, err
	}
	if dataFile != "" {
		cfg.Data.File = dataFile
	}

	logger, closeLog, err := logging.New(cfg.Logging, verbose)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	ds, err := dataset.Load(cfg.Data.File, dataset.Options{
		CSV: csvparser.Settings{
			Delimiter:  cfg.Data.Delimiter,
			HeaderRows: cfg.Data.HeaderRows,
		},
		WeekendDays: cfg.Data.WeekendDays,
	})
	if err != nil {
		closeLog()
		if errors.Is(err, dataset.ErrDataFileNotFound) {
			return nil, fmt.Errorf("the rental dataset could not be found. Place it at %q, set data.file in the configuration or pass --data: %w",
				cfg.Data.File, err)
		}
		return nil, err
	}

	logger.Info("dataset loaded",
		slog.String("file", ds.Source),
		slog.Int("records", len(ds.Records)),
		slog.Time("min_date", ds.Bounds.MinDate),
		slog.Time("max_date", ds.Bounds.MaxDate))

	builder := dashboard.NewBuilder(ds, dashboard.Options{
		PreviewRows:     cfg.Filter.PreviewRows,
		DefaultMinCount: cfg.Filter.DefaultMinCount,
		DefaultMaxCount: cfg.Filter.DefaultMaxCount,
	}, logger)

	return &app{cfg: cfg, logger: logger, builder: builder, close: closeLog}, nil
}

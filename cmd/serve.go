// =============================================================================
// Bike Sharing Dashboard - Serve Command
// =============================================================================
//
// COMMAND USAGE:
//   bikedash serve [--addr :8501]
//
// Loads the dataset once, then serves the interactive dashboard until
// SIGINT/SIGTERM. Every request recomputes the view from the loaded table.
//
// =============================================================================

package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/bike-sharing-dashboard/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive dashboard over HTTP",
	Long: `Serve the dashboard. Open the printed address in a browser and use the
sidebar to filter by date range, rental count and season.

The dataset is loaded before the server starts listening; if it cannot be
found the command exits without serving anything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		if serveAddr != "" {
			a.cfg.Server.Addr = serveAddr
		}

		srv, err := server.New(a.cfg.Server, a.builder, a.logger)
		if err != nil {
			return err
		}

		a.logger.Info("starting dashboard",
			slog.String("addr", a.cfg.Server.Addr),
			slog.Bool("metrics", a.cfg.Server.MetricsEnabled()))

		return srv.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr)")
}

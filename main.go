// =============================================================================
// Bike Sharing Dashboard - Main Entry Point
// =============================================================================
//
// This is the main entry point of the bikedash CLI. It delegates everything
// to the cmd package.
//
// USAGE:
//   bikedash serve     - Serve the interactive dashboard
//   bikedash report    - Render a selection to HTML, PNG and XLSX files
//   bikedash summary   - Print the dashboard tables to the terminal
//   bikedash version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Loader, filter, aggregator, presenters, HTTP server
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/bike-sharing-dashboard/cmd"
)

func main() {
	cmd.Execute()
}

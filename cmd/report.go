// =============================================================================
// Bike Sharing Dashboard - Report Command
// =============================================================================
//
// This file defines the 'report' command, which renders one selection to
// static files instead of serving it.
//
// COMMAND USAGE:
//   bikedash report [flags]
//
// FLAGS:
//   --start, --end  : Date range (YYYY-MM-DD), default the full data range
//   --min, --max    : Rental count window, default 100..5000 clamped
//   --season        : 0 all, 1 Spring, 2 Summer, 3 Fall, 4 Winter
//   --preview       : Include the raw-row preview
//   --out-dir       : Output directory (overrides output.dir)
//   --png           : Also write the three charts as PNG
//   --xlsx          : Also write the workbook
//
// REPORT PIPELINE:
//   1. Load configuration and dataset (fatal if the dataset is missing)
//   2. Resolve the selection and build the view once
//   3. Write the artifacts concurrently:
//      a. <base>.html        dashboard page
//      b. <base>_charts.html interactive charts
//      c. <base>_*.png       static charts (--png)
//      d. <base>.xlsx        workbook (--xlsx)
//   4. Write <base>_summary.txt and print the summary
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/bike-sharing-dashboard/internal/charts"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/dashboard"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/export"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/presenter"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/types"
	"github.com/ginjaninja78/bike-sharing-dashboard/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	reportFlags  selectionFlags
	reportOutDir string
	reportPNG    bool
	reportXLSX   bool
)

// =============================================================================
// REPORT COMMAND DEFINITION
// =============================================================================

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a selection to static HTML, PNG and XLSX files",
	Long: `The report command renders the dashboard for one selection to files in
the output directory. File names follow output.file_name_format, which may use
the {uuid}, {timestamp}, {date}, {time} and {season} placeholders.

Nothing is written when the dataset cannot be found. If any artifact fails
to write, the files already written for the run are removed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		startTime := time.Now()

		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		sel, preview, err := reportFlags.selection(cmd, a.builder.DefaultSelection())
		if err != nil {
			return err
		}
		view := a.builder.Build(cmd.Context(), sel, preview)

		outDir := a.cfg.Output.Dir
		if reportOutDir != "" {
			outDir = reportOutDir
		}

		result, err := writeReport(view, reportOptions{
			Dir:            outDir,
			FileNameFormat: a.cfg.Output.FileNameFormat,
			PNG:            reportPNG,
			XLSX:           reportXLSX,
		})
		if err != nil {
			return err
		}

		summaryPath, err := utils.WriteSummaryLog(utils.ReportSummary{
			GeneratedAt:  startTime,
			DataFile:     a.cfg.Data.File,
			Selection:    view.Selection.Describe(),
			TotalRecords: view.TotalRecords,
			Filtered:     len(view.Filtered),
			Artifacts:    result.Artifacts,
			Duration:     time.Since(startTime),
		}, outDir, result.Base)
		if err != nil {
			return err
		}

		printReport(view, result, summaryPath, time.Since(startTime))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportFlags.register(reportCmd)
	reportCmd.Flags().StringVar(&reportOutDir, "out-dir", "", "Output directory (overrides output.dir)")
	reportCmd.Flags().BoolVar(&reportPNG, "png", false, "Also write the charts as PNG files")
	reportCmd.Flags().BoolVar(&reportXLSX, "xlsx", false, "Also write an XLSX workbook")
}

// =============================================================================
// ARTIFACTS
// =============================================================================

type reportOptions struct {
	Dir            string
	FileNameFormat string
	PNG            bool
	XLSX           bool
}

type reportResult struct {
	// Base is the artifact base name, without directory or extension.
	Base string

	// Artifacts are the written paths, sorted.
	Artifacts []string
}

// artifactResult is what each writer goroutine sends back.
type artifactResult struct {
	paths []string
	err   error
}

// writeReport writes every requested artifact for one view. Artifacts are
// independent, so they are written concurrently; the first error is
// returned after all writers finish, and every file written by this run is
// removed so a failed report leaves no partial set behind.
func writeReport(view *dashboard.View, opts reportOptions) (*reportResult, error) {
	if err := utils.EnsureDir(opts.Dir); err != nil {
		return nil, err
	}

	base := utils.GenerateOutputFileName(opts.FileNameFormat, "", map[string]string{
		"season": strings.ToLower(strings.ReplaceAll(types.SeasonName(view.Selection.Season), " ", "_")),
	})
	chartsFile := base + "_charts.html"

	writers := []func() ([]string, error){
		func() ([]string, error) {
			path := filepath.Join(opts.Dir, chartsFile)
			return []string{path}, writeFile(path, func(f *os.File) error {
				return charts.RenderPage(f, view)
			})
		},
		func() ([]string, error) {
			html, err := presenter.NewHTML()
			if err != nil {
				return nil, err
			}
			path := filepath.Join(opts.Dir, base+".html")
			return []string{path}, writeFile(path, func(f *os.File) error {
				return html.Render(f, view, presenter.PageOptions{ChartsURL: chartsFile, Static: true})
			})
		},
	}
	if opts.PNG {
		writers = append(writers, func() ([]string, error) {
			return charts.WritePNGs(view, opts.Dir, base)
		})
	}
	if opts.XLSX {
		writers = append(writers, func() ([]string, error) {
			path := filepath.Join(opts.Dir, base+".xlsx")
			return []string{path}, export.SaveAs(path, view)
		})
	}

	var wg sync.WaitGroup
	results := make(chan artifactResult, len(writers))
	for _, w := range writers {
		wg.Add(1)
		go func(write func() ([]string, error)) {
			defer wg.Done()
			paths, err := write()
			results <- artifactResult{paths: paths, err: err}
		}(w)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	result := &reportResult{Base: base}
	var written []string
	var firstErr error
	for r := range results {
		written = append(written, r.paths...)
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		result.Artifacts = append(result.Artifacts, r.paths...)
	}
	if firstErr != nil {
		removeArtifacts(written)
		return nil, firstErr
	}

	sort.Strings(result.Artifacts)
	return result, nil
}

// removeArtifacts deletes the regular files among paths. Directories are
// never touched: a path that names one was not created by this run.
func removeArtifacts(paths []string) {
	for _, path := range paths {
		info, err := os.Lstat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		os.Remove(path)
	}
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func printReport(view *dashboard.View, result *reportResult, summaryPath string, elapsed time.Duration) {
	color.Cyan("=== %s ===", view.Title)
	fmt.Printf("Selection:       %s\n", view.Selection.Describe())
	fmt.Printf("Records shown:   %d of %d\n", len(view.Filtered), view.TotalRecords)
	if view.Empty() {
		color.Yellow("No records match the selection; tables and charts are empty.")
	}

	fmt.Println("\nArtifacts:")
	for _, path := range result.Artifacts {
		color.Green("  ✓ %s", path)
	}
	fmt.Printf("  ✓ %s\n", summaryPath)
	fmt.Printf("Time elapsed:    %s\n", elapsed)
}

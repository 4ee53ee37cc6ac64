// =============================================================================
// Bike Sharing Dashboard - File Manager Utility
// =============================================================================
//
// This module provides the file utilities shared by the loader and the report
// command:
//   - Existence checks
//   - Output directory management
//   - Output file naming
//   - The plain-text summary written next to every report
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDir creates a directory (and its parents) if it doesn't exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// =============================================================================
// FILE NAMING
// =============================================================================

// GenerateOutputFileName generates an output file name from a format string.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//               {season}    - Selected season name (when passed in params)
//   - ext: The extension to ensure, with the dot (e.g. ".html").
//   - params: Additional placeholder values.
//
// EXAMPLE:
//   format: "bikeshare_{date}_{uuid}"
//   ext:    ".xlsx"
//   output: "bikeshare_20240115_a1b2c3d4-e5f6-7890-abcd-ef1234567890.xlsx"
func GenerateOutputFileName(format, ext string, params map[string]string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if ext != "" && !strings.HasSuffix(strings.ToLower(result), strings.ToLower(ext)) {
		result += ext
	}

	return result
}

// =============================================================================
// REPORT SUMMARY
// =============================================================================

// ReportSummary describes one run of the report command.
type ReportSummary struct {
	GeneratedAt  time.Time
	DataFile     string
	Selection    string
	TotalRecords int
	Filtered     int
	Artifacts    []string
	Duration     time.Duration
}

// WriteSummaryLog writes a human-readable summary next to the artifacts.
// Each artifact that exists on disk is listed with its size.
//
// RETURNS:
//   - The path of the summary file.
//   - An error if the file cannot be written.
func WriteSummaryLog(summary ReportSummary, outputDir string, baseName string) (string, error) {
	summaryPath := filepath.Join(outputDir, baseName+"_summary.txt")

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	rule := strings.Repeat("=", 80) + "\n"
	fmt.Fprint(writer, rule)
	fmt.Fprintln(writer, "Bike Sharing Dashboard - Report Summary")
	fmt.Fprint(writer, rule)
	fmt.Fprintf(writer, "Generated:       %s\n", summary.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(writer, "Data file:       %s\n", summary.DataFile)
	fmt.Fprintf(writer, "Selection:       %s\n", summary.Selection)
	fmt.Fprintf(writer, "Records loaded:  %d\n", summary.TotalRecords)
	fmt.Fprintf(writer, "Records shown:   %d\n", summary.Filtered)
	fmt.Fprintf(writer, "Time elapsed:    %s\n", summary.Duration)
	fmt.Fprintln(writer)
	fmt.Fprintln(writer, "Artifacts:")
	for _, a := range summary.Artifacts {
		size, err := GetFileSize(a)
		if err != nil {
			fmt.Fprintf(writer, "  - %s\n", a)
			continue
		}
		fmt.Fprintf(writer, "  - %s (%d bytes)\n", a, size)
	}
	fmt.Fprint(writer, rule)

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return summaryPath, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// GetFileSize returns the size of a file in bytes.
func GetFileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

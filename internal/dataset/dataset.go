// =============================================================================
// Bike Sharing Dashboard - Dataset Loader
// =============================================================================
//
// This module loads the rental CSV into memory once per process. The loaded
// table is read-only afterwards: filters and aggregations always produce new
// slices.
//
// LOADING PROCESS:
//   1. Check that the path is an existing, readable regular file (fatal
//      otherwise)
//   2. Parse the CSV with the configured delimiter and header rows
//   3. Preprocess every row into a typed Record
//   4. Compute the date and count bounds used by the filter controls
//
// =============================================================================

package dataset

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ginjaninja78/bike-sharing-dashboard/internal/csvparser"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/types"
	"github.com/ginjaninja78/bike-sharing-dashboard/pkg/utils"
)

// ErrDataFileNotFound is returned when the data file path does not resolve
// to a readable file. Callers treat it as fatal.
var ErrDataFileNotFound = errors.New("data file not found")

// =============================================================================
// DATASET STRUCTURES
// =============================================================================

// Options controls how the data file is read and preprocessed.
type Options struct {
	// CSV holds the delimiter and header settings.
	CSV csvparser.Settings

	// WeekendDays are the weekday codes treated as weekend.
	// Default: {0, 6}
	WeekendDays []int
}

// Dataset is the full, preprocessed rental table.
type Dataset struct {
	// Records are the rows in file order.
	Records []types.Record

	// Bounds are the extremes of the table, used to bound the controls.
	Bounds Bounds

	// Source is the path the data was loaded from.
	Source string
}

// Bounds holds the date and rental-count extremes of a table.
// The zero value describes an empty table.
type Bounds struct {
	MinDate  time.Time
	MaxDate  time.Time
	MinCount int
	MaxCount int
}

// Empty reports whether the bounds were computed from zero records.
func (b Bounds) Empty() bool {
	return b.MinDate.IsZero() && b.MaxDate.IsZero()
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads and preprocesses the data file.
//
// RETURNS:
//   - The dataset.
//   - ErrDataFileNotFound (wrapped with the path) when the file is missing,
//     ErrMissingColumn or a row error when the content cannot be used.
func Load(path string, opts Options) (*Dataset, error) {
	if err := checkReadable(path); err != nil {
		return nil, err
	}

	data, err := csvparser.Parse(path, opts.CSV)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	records, err := Preprocess(data, opts.WeekendDays)
	if err != nil {
		return nil, fmt.Errorf("failed to preprocess %s: %w", path, err)
	}

	return &Dataset{
		Records: records,
		Bounds:  ComputeBounds(records),
		Source:  data.SourceFile,
	}, nil
}

// New wraps already typed records into a dataset.
func New(records []types.Record) *Dataset {
	return &Dataset{
		Records: records,
		Bounds:  ComputeBounds(records),
	}
}

// checkReadable verifies the path is an existing regular file this process
// can open.
func checkReadable(path string) error {
	if !utils.FileExists(path) {
		return fmt.Errorf("%w: %s (check the folder and file name)", ErrDataFileNotFound, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDataFileNotFound, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrDataFileNotFound, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDataFileNotFound, path, err)
	}
	return f.Close()
}

// ComputeBounds returns the date and count extremes of the records.
func ComputeBounds(records []types.Record) Bounds {
	if len(records) == 0 {
		return Bounds{}
	}

	b := Bounds{
		MinDate:  records[0].Date,
		MaxDate:  records[0].Date,
		MinCount: records[0].Count,
		MaxCount: records[0].Count,
	}
	for _, r := range records[1:] {
		if r.Date.Before(b.MinDate) {
			b.MinDate = r.Date
		}
		if r.Date.After(b.MaxDate) {
			b.MaxDate = r.Date
		}
		if r.Count < b.MinCount {
			b.MinCount = r.Count
		}
		if r.Count > b.MaxCount {
			b.MaxCount = r.Count
		}
	}
	return b
}

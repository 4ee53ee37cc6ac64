package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ginjaninja78/bike-sharing-dashboard/internal/csvparser"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/types"
)

// Column names of the UCI day.csv layout that the dashboard reads.
const (
	ColumnDate    = "dteday"
	ColumnSeason  = "season"
	ColumnWeekday = "weekday"
	ColumnCount   = "cnt"
)

// RequiredColumns must all be present in the input file.
var RequiredColumns = []string{ColumnDate, ColumnSeason, ColumnWeekday, ColumnCount}

// ErrMissingColumn is returned when a required column is absent.
var ErrMissingColumn = errors.New("missing required column")

// DefaultWeekendDays is the UCI encoding: 0 = Sunday, 6 = Saturday.
var DefaultWeekendDays = []int{0, 6}

var dateLayouts = []string{
	types.DateLayout,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// Preprocess converts parsed CSV rows into typed records. It parses the date
// column and derives the weekend indicator from the weekday column.
func Preprocess(data *csvparser.CSVData, weekendDays []int) ([]types.Record, error) {
	for _, col := range RequiredColumns {
		if !data.HasColumn(col) {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	if len(weekendDays) == 0 {
		weekendDays = DefaultWeekendDays
	}
	weekend := make(map[int]bool, len(weekendDays))
	for _, d := range weekendDays {
		weekend[d] = true
	}

	records := make([]types.Record, 0, data.RowCount())
	for i, row := range data.Rows {
		rec, err := parseRow(row, weekend)
		if err != nil {
			line := i + 2
			if i < len(data.LineNumbers) {
				line = data.LineNumbers[i]
			}
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseRow(row map[string]string, weekend map[int]bool) (types.Record, error) {
	date, err := ParseDate(row[ColumnDate])
	if err != nil {
		return types.Record{}, err
	}

	season, err := parseInt(row, ColumnSeason)
	if err != nil {
		return types.Record{}, err
	}

	weekday, err := parseInt(row, ColumnWeekday)
	if err != nil {
		return types.Record{}, err
	}

	count, err := parseInt(row, ColumnCount)
	if err != nil {
		return types.Record{}, err
	}

	return types.Record{
		Date:      date,
		Season:    season,
		Weekday:   weekday,
		Count:     count,
		IsWeekend: IsWeekend(weekday, weekend),
	}, nil
}

// IsWeekend reports whether a weekday code is one of the weekend days.
func IsWeekend(weekday int, weekendDays map[int]bool) bool {
	return weekendDays[weekday]
}

// ParseDate parses a dteday value into a date at midnight UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse %s %q as a date", ColumnDate, value)
}

// parseInt accepts integers and integral floats ("3", "3.0").
func parseInt(row map[string]string, column string) (int, error) {
	value := strings.TrimSpace(row[column])
	if n, err := strconv.Atoi(value); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil && f == float64(int(f)) {
		return int(f), nil
	}
	return 0, fmt.Errorf("unable to parse %s %q as an integer", column, value)
}

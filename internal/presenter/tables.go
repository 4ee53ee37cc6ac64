// =============================================================================
// Bike Sharing Dashboard - Presenter Tables
// =============================================================================
//
// Header + row builders shared by the HTML page and the terminal output, so
// both show the same captions and the same number formatting.
//
// =============================================================================

package presenter

import (
	"fmt"
	"strconv"

	"github.com/ginjaninja78/bike-sharing-dashboard/internal/aggregate"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/dashboard"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/types"
)

// Table captions.
const (
	SeasonTableTitle        = "Average Rentals per Season"
	WeekendTableTitle       = "Average Rentals: Weekday vs Weekend"
	SeasonWeekendTableTitle = "Average Rentals per Season and Day Type"
	StatsTableTitle         = "Rental Statistics"
	PreviewTableTitle       = "Filtered Data Preview"

	AverageColumn = "Average Rentals"
)

// Table is a captioned header + rows block.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// FormatMean renders a mean with two decimals.
func FormatMean(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// SeasonTable is the season-average table.
func SeasonTable(view *dashboard.View) Table {
	t := Table{Title: SeasonTableTitle, Columns: []string{"Season", AverageColumn}, Rows: [][]string{}}
	for _, m := range view.SeasonMeans {
		t.Rows = append(t.Rows, []string{fmt.Sprintf("%d (%s)", m.Key, m.Label), FormatMean(m.Mean)})
	}
	return t
}

// WeekendTable is the weekend-average table.
func WeekendTable(view *dashboard.View) Table {
	t := Table{Title: WeekendTableTitle, Columns: []string{"Is Weekend", AverageColumn}, Rows: [][]string{}}
	for _, m := range view.WeekendMeans {
		t.Rows = append(t.Rows, []string{yesNo(m.Key == 1), FormatMean(m.Mean)})
	}
	return t
}

// SeasonWeekendTable is the wide season x indicator table. Absent pairs are
// blank.
func SeasonWeekendTable(view *dashboard.View) Table {
	wide := view.SeasonWeekend
	columns := []string{"Season"}
	for _, indicator := range wide.Columns {
		columns = append(columns, types.WeekendLabel(indicator))
	}

	t := Table{Title: SeasonWeekendTableTitle, Columns: columns, Rows: [][]string{}}
	for _, row := range wide.Rows {
		line := []string{row.Label}
		for _, c := range row.Cells {
			line = append(line, cell(c))
		}
		t.Rows = append(t.Rows, line)
	}
	return t
}

// StatsTable is the descriptive statistics of the filtered rental count.
func StatsTable(view *dashboard.View) Table {
	s := view.Stats
	t := Table{Title: StatsTableTitle, Columns: []string{"Statistic", "Value"}}
	t.Rows = [][]string{
		{"Days", strconv.Itoa(s.Days)},
		{"Total rentals", strconv.Itoa(s.Total)},
		{"Mean", FormatMean(s.Mean)},
		{"Std. deviation", FormatMean(s.StdDev)},
		{"Min", FormatMean(s.Min)},
		{"Median", FormatMean(s.Median)},
		{"Max", FormatMean(s.Max)},
	}
	return t
}

// PreviewTable is the raw-row preview, or nil when the preview is off.
func PreviewTable(view *dashboard.View) *Table {
	if !view.ShowPreview || view.Preview == nil {
		return nil
	}
	return &Table{Title: PreviewTableTitle, Columns: view.Preview.Columns, Rows: view.Preview.Rows}
}

func cell(c aggregate.Cell) string {
	if !c.Valid {
		return ""
	}
	return FormatMean(c.Mean)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// =============================================================================
// Bike Sharing Dashboard - XLSX Export
// =============================================================================
//
// Writes one dashboard view as a workbook. The layout mirrors the page:
//
//   | Sheet          | Content                                     |
//   |----------------|---------------------------------------------|
//   | Filtered       | The filtered rows, in file order            |
//   | Statistics     | Descriptive statistics of cnt               |
//   | SeasonAverage  | Mean cnt per season                         |
//   | WeekendAverage | Mean cnt per weekend indicator              |
//   | SeasonWeekend  | Season x weekday/weekend means (wide)       |
//
// Absent (season, indicator) pairs are left blank. Means are rounded to two
// decimals.
//
// =============================================================================

package export

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/bike-sharing-dashboard/internal/dashboard"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/types"
)

// Sheet names, in workbook order.
const (
	SheetFiltered       = "Filtered"
	SheetStatistics     = "Statistics"
	SheetSeasonAverage  = "SeasonAverage"
	SheetWeekendAverage = "WeekendAverage"
	SheetSeasonWeekend  = "SeasonWeekend"
)

// ContentType is the MIME type of the workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Workbook builds the workbook for a view. The caller closes it.
func Workbook(view *dashboard.View) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SheetFiltered); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename first sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	sheets := []struct {
		name string
		rows [][]interface{}
	}{
		{SheetFiltered, filteredRows(view)},
		{SheetStatistics, statsRows(view)},
		{SheetSeasonAverage, seasonRows(view)},
		{SheetWeekendAverage, weekendRows(view)},
		{SheetSeasonWeekend, wideRows(view)},
	}

	for _, s := range sheets {
		if s.name != SheetFiltered {
			if _, err := f.NewSheet(s.name); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to create sheet %s: %w", s.name, err)
			}
		}
		if err := writeRows(f, s.name, s.rows, bold); err != nil {
			f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// Write streams the workbook for a view to w.
func Write(w io.Writer, view *dashboard.View) error {
	f, err := Workbook(view)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveAs writes the workbook for a view to path.
func SaveAs(path string, view *dashboard.View) error {
	f, err := Workbook(view)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// =============================================================================
// SHEET CONTENT
// =============================================================================

func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}

	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
	return nil
}

func filteredRows(view *dashboard.View) [][]interface{} {
	rows := [][]interface{}{{"dteday", "season", "weekday", "cnt", "is_weekend"}}
	for _, r := range view.Filtered {
		rows = append(rows, []interface{}{
			r.Date.Format(types.DateLayout), r.Season, r.Weekday, r.Count, r.WeekendIndicator(),
		})
	}
	return rows
}

func statsRows(view *dashboard.View) [][]interface{} {
	s := view.Stats
	return [][]interface{}{
		{"statistic", "value"},
		{"days", s.Days},
		{"total", s.Total},
		{"mean", round(s.Mean)},
		{"std", round(s.StdDev)},
		{"min", round(s.Min)},
		{"median", round(s.Median)},
		{"max", round(s.Max)},
	}
}

func seasonRows(view *dashboard.View) [][]interface{} {
	rows := [][]interface{}{{"season", "label", "mean_cnt", "days"}}
	for _, m := range view.SeasonMeans {
		rows = append(rows, []interface{}{m.Key, m.Label, round(m.Mean), m.Days})
	}
	return rows
}

func weekendRows(view *dashboard.View) [][]interface{} {
	rows := [][]interface{}{{"is_weekend", "label", "mean_cnt", "days"}}
	for _, m := range view.WeekendMeans {
		rows = append(rows, []interface{}{m.Key, m.Label, round(m.Mean), m.Days})
	}
	return rows
}

func wideRows(view *dashboard.View) [][]interface{} {
	wide := view.SeasonWeekend

	header := []interface{}{"season"}
	for _, indicator := range wide.Columns {
		header = append(header, types.WeekendLabel(indicator))
	}
	rows := [][]interface{}{header}

	for _, row := range wide.Rows {
		line := []interface{}{row.Label}
		for _, c := range row.Cells {
			if c.Valid {
				line = append(line, round(c.Mean))
			} else {
				line = append(line, "")
			}
		}
		rows = append(rows, line)
	}
	return rows
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}

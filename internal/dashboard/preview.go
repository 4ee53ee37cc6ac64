package dashboard

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/ginjaninja78/bike-sharing-dashboard/internal/dataset"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/types"
)

// Table is a header plus string rows, ready for any presenter.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Frame builds a gota dataframe of the records with the dataset's column
// names and the derived is_weekend indicator.
func Frame(records []types.Record) dataframe.DataFrame {
	dates := make([]string, len(records))
	seasons := make([]int, len(records))
	weekdays := make([]int, len(records))
	counts := make([]int, len(records))
	weekend := make([]int, len(records))

	for i, r := range records {
		dates[i] = r.Date.Format(types.DateLayout)
		seasons[i] = r.Season
		weekdays[i] = r.Weekday
		counts[i] = r.Count
		weekend[i] = r.WeekendIndicator()
	}

	return dataframe.New(
		series.New(dates, series.String, dataset.ColumnDate),
		series.New(seasons, series.Int, dataset.ColumnSeason),
		series.New(weekdays, series.Int, dataset.ColumnWeekday),
		series.New(counts, series.Int, dataset.ColumnCount),
		series.New(weekend, series.Int, "is_weekend"),
	)
}

// PreviewTable returns the first n rows of the records as a table.
func PreviewTable(records []types.Record, n int) (*Table, error) {
	if n > len(records) {
		n = len(records)
	}

	df := Frame(records[:n])
	if df.Err != nil {
		return nil, fmt.Errorf("failed to build preview frame: %w", df.Err)
	}

	all := df.Records()
	if len(all) == 0 {
		return &Table{Columns: df.Names(), Rows: [][]string{}}, nil
	}
	return &Table{Columns: all[0], Rows: all[1:]}, nil
}

package export

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/bike-sharing-dashboard/internal/dashboard"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/dataset"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/logging"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/types"
)

func day(s string) time.Time {
	t, err := time.Parse(types.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func view(season int) *dashboard.View {
	ds := dataset.New([]types.Record{
		{Date: day("2025-01-01"), Season: 1, Weekday: 3, Count: 500},
		{Date: day("2025-01-02"), Season: 1, Weekday: 6, Count: 800, IsWeekend: true},
		{Date: day("2025-04-01"), Season: 2, Weekday: 2, Count: 1200},
	})
	b := dashboard.NewBuilder(ds, dashboard.Options{DefaultMaxCount: 5000}, logging.Discard())
	sel := b.DefaultSelection()
	sel.Season = season
	return b.Build(context.Background(), sel, false)
}

func TestWrite_Sheets(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, view(types.SeasonAll)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		SheetFiltered, SheetStatistics, SheetSeasonAverage, SheetWeekendAverage, SheetSeasonWeekend,
	}, f.GetSheetList())

	rows, err := f.GetRows(SheetFiltered)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"dteday", "season", "weekday", "cnt", "is_weekend"}, rows[0])
	assert.Equal(t, []string{"2025-01-02", "1", "6", "800", "1"}, rows[2])

	rows, err = f.GetRows(SheetSeasonAverage)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"1", "Spring", "650", "2"}, rows[1])
	assert.Equal(t, []string{"2", "Summer", "1200", "1"}, rows[2])

	rows, err = f.GetRows(SheetWeekendAverage)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "850", rows[1][2])
	assert.Equal(t, "800", rows[2][2])

	rows, err = f.GetRows(SheetSeasonWeekend)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"season", "Weekday", "Weekend"}, rows[0])
	assert.Equal(t, []string{"Spring", "500", "800"}, rows[1])
	require.GreaterOrEqual(t, len(rows[2]), 2)
	assert.Equal(t, []string{"Summer", "1200"}, rows[2][:2])
}

func TestSaveAs_EmptyView(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, SaveAs(path, view(types.SeasonWinter)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetFiltered)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	rows, err = f.GetRows(SheetSeasonWeekend)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"season"}}, rows)
}

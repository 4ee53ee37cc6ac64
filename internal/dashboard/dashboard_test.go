package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/bike-sharing-dashboard/internal/dataset"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/filter"
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

func twoRowBuilder() *Builder {
	ds := dataset.New([]types.Record{
		{Date: day("2025-01-01"), Season: 1, Weekday: 3, Count: 500},
		{Date: day("2025-01-02"), Season: 1, Weekday: 6, Count: 800, IsWeekend: true},
	})
	return NewBuilder(ds, Options{PreviewRows: 5, DefaultMinCount: 100, DefaultMaxCount: 5000}, logging.Discard())
}

func TestBuild_WorkedExample(t *testing.T) {
	b := twoRowBuilder()
	sel := filter.Selection{Start: day("2025-01-01"), End: day("2025-01-02"), MinCount: 0, MaxCount: 1000}

	view := b.Build(context.Background(), sel, false)

	assert.Equal(t, Title, view.Title)
	assert.Equal(t, 2, view.TotalRecords)
	assert.Len(t, view.Filtered, 2)
	require.Len(t, view.SeasonMeans, 1)
	assert.InDelta(t, 650, view.SeasonMeans[0].Mean, 1e-9)
	require.Len(t, view.WeekendMeans, 2)
	assert.InDelta(t, 500, view.WeekendMeans[0].Mean, 1e-9)
	assert.InDelta(t, 800, view.WeekendMeans[1].Mean, 1e-9)
	assert.Nil(t, view.Preview)
}

func TestBuild_CountWindowKeepsSecondRow(t *testing.T) {
	b := twoRowBuilder()
	sel := filter.Selection{Start: day("2025-01-01"), End: day("2025-01-02"), MinCount: 600, MaxCount: 1000}

	view := b.Build(context.Background(), sel, false)

	require.Len(t, view.Filtered, 1)
	require.Len(t, view.SeasonMeans, 1)
	assert.Equal(t, 1, view.SeasonMeans[0].Key)
	assert.InDelta(t, 800, view.SeasonMeans[0].Mean, 1e-9)
}

func TestBuild_SelectionIsClamped(t *testing.T) {
	b := twoRowBuilder()
	sel := filter.Selection{Start: day("2000-01-01"), End: day("2030-01-01"), MinCount: 0, MaxCount: 100000}

	view := b.Build(context.Background(), sel, false)

	assert.Equal(t, day("2025-01-01"), view.Selection.Start)
	assert.Equal(t, day("2025-01-02"), view.Selection.End)
	assert.Equal(t, 500, view.Selection.MinCount)
	assert.Equal(t, 800, view.Selection.MaxCount)
	assert.Len(t, view.Filtered, 2)
}

func TestBuild_SelectionOutsideDataIsEmpty(t *testing.T) {
	b := twoRowBuilder()

	tests := []struct {
		name string
		sel  filter.Selection
	}{
		{"count window above data", filter.Selection{Start: day("2025-01-01"), End: day("2025-01-02"), MinCount: 900, MaxCount: 1000}},
		{"date range after data", filter.Selection{Start: day("2026-01-01"), End: day("2026-12-31"), MinCount: 0, MaxCount: 1000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := b.Build(context.Background(), tt.sel, false)

			assert.True(t, view.Empty())
			assert.Equal(t, tt.sel, view.Selection)
			assert.Empty(t, view.SeasonMeans)
		})
	}
}

func TestBuild_EmptySubsetPropagates(t *testing.T) {
	b := twoRowBuilder()
	sel := filter.Selection{Start: day("2025-01-01"), End: day("2025-01-02"), MinCount: 500, MaxCount: 800, Season: types.SeasonWinter}

	view := b.Build(context.Background(), sel, true)

	assert.True(t, view.Empty())
	assert.Empty(t, view.SeasonMeans)
	assert.Empty(t, view.WeekendMeans)
	assert.Empty(t, view.SeasonWeekend.Rows)
	assert.Zero(t, view.Stats.Days)
	require.NotNil(t, view.Preview)
	assert.Empty(t, view.Preview.Rows)
	assert.Equal(t, []string{"dteday", "season", "weekday", "cnt", "is_weekend"}, view.Preview.Columns)
}

func TestBuild_Preview(t *testing.T) {
	b := twoRowBuilder()

	view := b.Build(context.Background(), b.DefaultSelection(), true)

	require.NotNil(t, view.Preview)
	assert.Equal(t, [][]string{
		{"2025-01-01", "1", "3", "500", "0"},
		{"2025-01-02", "1", "6", "800", "1"},
	}, view.Preview.Rows)
}

func TestPreviewTable_LimitsRows(t *testing.T) {
	var records []types.Record
	for i := 0; i < 10; i++ {
		records = append(records, types.Record{Date: day("2025-01-01").AddDate(0, 0, i), Season: 1, Weekday: i % 7, Count: i})
	}

	table, err := PreviewTable(records, 3)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 3)
	assert.Equal(t, "2025-01-03", table.Rows[2][0])
}

func TestDefaultSelection(t *testing.T) {
	sel := twoRowBuilder().DefaultSelection()

	assert.Equal(t, day("2025-01-01"), sel.Start)
	assert.Equal(t, day("2025-01-02"), sel.End)
	assert.Equal(t, 500, sel.MinCount)
	assert.Equal(t, 800, sel.MaxCount)
	assert.Equal(t, types.SeasonAll, sel.Season)
}

func TestFrame_Shape(t *testing.T) {
	df := Frame([]types.Record{{Date: day("2025-01-01"), Season: 2, Weekday: 0, Count: 10, IsWeekend: true}})
	require.NoError(t, df.Err)

	rows, cols := df.Dims()
	assert.Equal(t, 1, rows)
	assert.Equal(t, 5, cols)
	assert.InDelta(t, 10, df.Col("cnt").Mean(), 1e-9)
}

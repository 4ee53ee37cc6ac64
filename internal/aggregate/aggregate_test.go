package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/bike-sharing-dashboard/internal/types"
)

func rec(date string, season, weekday, count int) types.Record {
	t, err := time.Parse(types.DateLayout, date)
	if err != nil {
		panic(err)
	}
	return types.Record{Date: t, Season: season, Weekday: weekday, Count: count, IsWeekend: weekday == 0 || weekday == 6}
}

func TestWorkedExample_BothRows(t *testing.T) {
	rows := []types.Record{
		rec("2025-01-01", 1, 3, 500),
		rec("2025-01-02", 1, 6, 800),
	}

	seasons := BySeason(rows)
	require.Len(t, seasons, 1)
	assert.Equal(t, Mean{Key: 1, Label: "Spring", Mean: 650, Days: 2}, seasons[0])

	weekend := ByWeekend(rows)
	require.Len(t, weekend, 2)
	assert.Equal(t, Mean{Key: 0, Label: "Weekday", Mean: 500, Days: 1}, weekend[0])
	assert.Equal(t, Mean{Key: 1, Label: "Weekend", Mean: 800, Days: 1}, weekend[1])
}

func TestWorkedExample_SecondRowOnly(t *testing.T) {
	seasons := BySeason([]types.Record{rec("2025-01-02", 1, 6, 800)})
	require.Len(t, seasons, 1)
	assert.Equal(t, 1, seasons[0].Key)
	assert.InDelta(t, 800, seasons[0].Mean, 1e-9)
}

func TestBySeason_SortedByCode(t *testing.T) {
	rows := []types.Record{
		rec("2025-10-01", 4, 1, 3000),
		rec("2025-04-01", 2, 2, 4000),
		rec("2025-04-02", 2, 3, 5000),
		rec("2025-01-01", 1, 3, 100),
	}

	got := BySeason(rows)
	require.Len(t, got, 3)
	assert.Equal(t, []int{1, 2, 4}, []int{got[0].Key, got[1].Key, got[2].Key})
	assert.InDelta(t, 4500, got[1].Mean, 1e-9)
	assert.Equal(t, "Winter", got[2].Label)
}

func TestEmptyInputGivesEmptyTables(t *testing.T) {
	assert.NotNil(t, BySeason(nil))
	assert.Empty(t, BySeason(nil))
	assert.Empty(t, ByWeekend([]types.Record{}))

	wide := BySeasonWeekend(nil)
	assert.Empty(t, wide.Rows)
	assert.Empty(t, wide.Columns)
	assert.Empty(t, wide.Column(1))

	assert.Equal(t, Stats{}, Describe(nil))
}

func TestBySeasonWeekend_Wide(t *testing.T) {
	rows := []types.Record{
		rec("2025-01-01", 1, 3, 500),
		rec("2025-01-02", 1, 6, 800),
		rec("2025-01-03", 1, 0, 1000),
		rec("2025-04-01", 2, 2, 4000),
	}

	wide := BySeasonWeekend(rows)
	assert.Equal(t, []int{0, 1}, wide.Columns)
	require.Len(t, wide.Rows, 2)

	spring := wide.Rows[0]
	assert.Equal(t, 1, spring.Season)
	assert.Equal(t, []Cell{{Mean: 500, Valid: true}, {Mean: 900, Valid: true}}, spring.Cells)

	summer := wide.Rows[1]
	assert.Equal(t, 2, summer.Season)
	assert.Equal(t, Cell{Mean: 4000, Valid: true}, summer.Cells[0])
	assert.False(t, summer.Cells[1].Valid, "no weekend rows in summer")

	assert.Equal(t, []Cell{{Mean: 900, Valid: true}, {}}, wide.Column(1))
}

func TestBySeasonWeekend_OnlyPresentColumns(t *testing.T) {
	wide := BySeasonWeekend([]types.Record{rec("2025-01-02", 1, 6, 800)})

	assert.Equal(t, []int{1}, wide.Columns)
	require.Len(t, wide.Rows, 1)
	assert.Equal(t, []Cell{{Mean: 800, Valid: true}}, wide.Rows[0].Cells)

	weekdays := wide.Column(0)
	require.Len(t, weekdays, 1)
	assert.False(t, weekdays[0].Valid)
}

func TestDescribe(t *testing.T) {
	rows := []types.Record{
		rec("2025-01-01", 1, 3, 500),
		rec("2025-01-02", 1, 6, 800),
		rec("2025-01-03", 1, 0, 200),
	}

	stats := Describe(rows)
	assert.Equal(t, 3, stats.Days)
	assert.Equal(t, 1500, stats.Total)
	assert.InDelta(t, 500, stats.Mean, 1e-9)
	assert.InDelta(t, 200, stats.Min, 1e-9)
	assert.InDelta(t, 500, stats.Median, 1e-9)
	assert.InDelta(t, 800, stats.Max, 1e-9)
	assert.InDelta(t, 300, stats.StdDev, 1e-9)
}

func TestDescribe_SingleRowHasNoSpread(t *testing.T) {
	stats := Describe([]types.Record{rec("2025-01-02", 1, 6, 800)})
	assert.Equal(t, 1, stats.Days)
	assert.Zero(t, stats.StdDev)
	assert.InDelta(t, 800, stats.Median, 1e-9)
}

package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/bike-sharing-dashboard/internal/dashboard"
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

func sampleView(season int) *dashboard.View {
	ds := dataset.New([]types.Record{
		{Date: day("2025-01-01"), Season: 1, Weekday: 3, Count: 500},
		{Date: day("2025-01-02"), Season: 1, Weekday: 6, Count: 800, IsWeekend: true},
		{Date: day("2025-04-01"), Season: 2, Weekday: 2, Count: 1200},
	})
	b := dashboard.NewBuilder(ds, dashboard.Options{DefaultMinCount: 100, DefaultMaxCount: 5000}, logging.Discard())
	sel := b.DefaultSelection()
	sel.Season = season
	return b.Build(context.Background(), sel, true)
}

func TestSelectionFlags_OnlyChangedFlagsOverride(t *testing.T) {
	var flags selectionFlags
	c := &cobra.Command{Use: "test"}
	flags.register(c)
	require.NoError(t, c.ParseFlags([]string{"--season", "2", "--preview", "--min", "600"}))

	def := filter.Selection{Start: day("2025-01-01"), End: day("2025-04-01"), MinCount: 500, MaxCount: 1200}
	sel, preview, err := flags.selection(c, def)
	require.NoError(t, err)

	assert.True(t, preview)
	assert.Equal(t, filter.Selection{
		Start: day("2025-01-01"), End: day("2025-04-01"),
		MinCount: 600, MaxCount: 1200, Season: types.SeasonSummer,
	}, sel)
}

func TestSelectionFlags_Invalid(t *testing.T) {
	var flags selectionFlags
	c := &cobra.Command{Use: "test"}
	flags.register(c)
	require.NoError(t, c.ParseFlags([]string{"--start", "2025-13-01"}))

	_, _, err := flags.selection(c, filter.Selection{})
	assert.ErrorIs(t, err, filter.ErrInvalidSelection)
}

func TestWriteReport_AllArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	result, err := writeReport(sampleView(types.SeasonAll), reportOptions{
		Dir:            dir,
		FileNameFormat: "report_{season}",
		PNG:            true,
		XLSX:           true,
	})
	require.NoError(t, err)

	assert.Equal(t, "report_all_seasons", result.Base)
	assert.Equal(t, []string{
		filepath.Join(dir, "report_all_seasons.html"),
		filepath.Join(dir, "report_all_seasons.xlsx"),
		filepath.Join(dir, "report_all_seasons_charts.html"),
		filepath.Join(dir, "report_all_seasons_daily.png"),
		filepath.Join(dir, "report_all_seasons_season.png"),
		filepath.Join(dir, "report_all_seasons_season_weekend.png"),
	}, result.Artifacts)

	for _, path := range result.Artifacts {
		info, err := os.Stat(path)
		require.NoError(t, err, path)
		assert.Positive(t, info.Size(), path)
	}

	page, err := os.ReadFile(filepath.Join(dir, "report_all_seasons.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), `src="report_all_seasons_charts.html"`)
	assert.NotContains(t, string(page), "<form")
}

func TestWriteReport_HTMLOnlyForEmptySelection(t *testing.T) {
	dir := t.TempDir()

	result, err := writeReport(sampleView(types.SeasonWinter), reportOptions{Dir: dir, FileNameFormat: "empty"})
	require.NoError(t, err)

	assert.Len(t, result.Artifacts, 2)
	page, err := os.ReadFile(filepath.Join(dir, "empty.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "No records match the selection.")
}

func TestWriteReport_FailureRemovesWrittenArtifacts(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "broken_charts.html")
	require.NoError(t, os.Mkdir(blocker, 0o755))

	result, err := writeReport(sampleView(types.SeasonAll), reportOptions{
		Dir:            dir,
		FileNameFormat: "broken",
		PNG:            true,
		XLSX:           true,
	})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "broken_charts.html")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "broken_charts.html", entries[0].Name())
	assert.True(t, entries[0].IsDir())
}

func TestSetup_MissingDataFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	cfgFile = filepath.Join(dir, "absent.yaml")
	dataFile = filepath.Join(dir, "missing.csv")
	t.Cleanup(func() {
		cfgFile = "config.yaml"
		dataFile = ""
	})

	a, err := setup(&cobra.Command{Use: "test"})
	require.Error(t, err)
	assert.Nil(t, a)
	assert.ErrorIs(t, err, dataset.ErrDataFileNotFound)
	assert.Contains(t, err.Error(), "missing.csv")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSetup_LoadsFixture(t *testing.T) {
	cfgFile = "absent.yaml"
	dataFile = filepath.Join("..", "internal", "dataset", "testdata", "day.csv")
	t.Cleanup(func() {
		cfgFile = "config.yaml"
		dataFile = ""
	})

	a, err := setup(&cobra.Command{Use: "test"})
	require.NoError(t, err)
	defer a.close()

	assert.Len(t, a.builder.Dataset().Records, 12)
	assert.Equal(t, 5, a.cfg.Filter.PreviewRows)
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)
	assert.Contains(t, buf.String(), "Bike Sharing Dashboard")
	assert.Contains(t, buf.String(), "Version:    "+Version)
}

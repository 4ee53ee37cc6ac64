package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOutputFileName(t *testing.T) {
	name := GenerateOutputFileName("bikeshare_{season}_{uuid}", ".xlsx", map[string]string{"season": "Summer"})

	assert.Regexp(t, regexp.MustCompile(`^bikeshare_Summer_[0-9a-f-]{36}\.xlsx$`), name)
}

func TestGenerateOutputFileName_KeepsExistingExtension(t *testing.T) {
	assert.Equal(t, "report.HTML", GenerateOutputFileName("report.HTML", ".html", nil))
	assert.Equal(t, "report", GenerateOutputFileName("report", "", nil))
}

func TestGenerateOutputFileName_Timestamp(t *testing.T) {
	name := GenerateOutputFileName("r_{date}", ".png", nil)
	assert.True(t, strings.HasPrefix(name, "r_"+time.Now().Format("2006")), name)
	assert.True(t, strings.HasSuffix(name, ".png"))
}

func TestEnsureDirAndFileExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	assert.False(t, FileExists(dir))

	require.NoError(t, EnsureDir(dir))
	assert.True(t, FileExists(dir))
}

func TestWriteSummaryLog(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteSummaryLog(ReportSummary{
		GeneratedAt:  time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		DataFile:     "data/day.csv",
		Selection:    "2011-01-01 to 2012-12-31, 100 to 5000 rentals, All seasons",
		TotalRecords: 731,
		Filtered:     700,
		Artifacts:    []string{"out/report.html", "out/report.xlsx"},
	}, dir, "report")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report_summary.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)
	assert.Contains(t, body, "Records loaded:  731")
	assert.Contains(t, body, "Records shown:   700")
	assert.Contains(t, body, "  - out/report.xlsx")

	size, err := GetFileSize(path)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), size)
}

func TestWriteSummaryLog_ListsArtifactSizes(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "report.html")
	require.NoError(t, os.WriteFile(page, []byte("<html></html>"), 0o644))
	missing := filepath.Join(dir, "report.xlsx")

	path, err := WriteSummaryLog(ReportSummary{Artifacts: []string{page, missing}}, dir, "report")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)
	assert.Contains(t, body, "  - "+page+" (13 bytes)\n")
	assert.Contains(t, body, "  - "+missing+"\n")
}

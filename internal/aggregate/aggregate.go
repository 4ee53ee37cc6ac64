// =============================================================================
// Bike Sharing Dashboard - Aggregator
// =============================================================================
//
// Group-wise arithmetic means of the rental count. Groups are built in Go and
// their statistics are computed on gota series, so every number on the
// dashboard comes from the same dataframe library.
//
// GROUPINGS:
//   - BySeason:        mean cnt per season code, ascending
//   - ByWeekend:       mean cnt per weekend indicator (0, 1), ascending
//   - BySeasonWeekend: mean cnt per (season, indicator), reshaped wide with
//                      one column per indicator value present in the input
//
// Zero input rows always give empty results, never errors.
//
// =============================================================================

package aggregate

import (
	"math"
	"sort"

	"github.com/go-gota/gota/series"

	"github.com/ginjaninja78/bike-sharing-dashboard/internal/types"
)

// =============================================================================
// RESULT TYPES
// =============================================================================

// Mean is one row of a single-key aggregate table.
type Mean struct {
	// Key is the season code or the weekend indicator.
	Key int `json:"key"`

	// Label is the display name of the key.
	Label string `json:"label"`

	// Mean is the arithmetic mean of cnt over the group.
	Mean float64 `json:"mean"`

	// Days is the number of records in the group.
	Days int `json:"days"`
}

// Cell is one value of the wide table. Valid is false when the
// (season, indicator) pair has no records.
type Cell struct {
	Mean  float64 `json:"mean"`
	Valid bool    `json:"valid"`
}

// WideRow is one season of the wide table; Cells line up with Wide.Columns.
type WideRow struct {
	Season int    `json:"season"`
	Label  string `json:"label"`
	Cells  []Cell `json:"cells"`
}

// Wide is the season x weekend-indicator mean table.
type Wide struct {
	// Columns are the weekend indicator values present, ascending.
	Columns []int `json:"columns"`

	// Rows holds one entry per season present, ascending.
	Rows []WideRow `json:"rows"`
}

// Column returns the cells of one indicator column, one per row.
// A column absent from the table gives all-invalid cells.
func (w Wide) Column(indicator int) []Cell {
	idx := -1
	for i, c := range w.Columns {
		if c == indicator {
			idx = i
		}
	}

	cells := make([]Cell, len(w.Rows))
	if idx < 0 {
		return cells
	}
	for i, row := range w.Rows {
		cells[i] = row.Cells[idx]
	}
	return cells
}

// Stats describes the rental count of a record set.
type Stats struct {
	Days   int     `json:"days"`
	Total  int     `json:"total"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
	Min    float64 `json:"min"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

// =============================================================================
// AGGREGATIONS
// =============================================================================

// BySeason returns the mean rental count per season.
func BySeason(records []types.Record) []Mean {
	groups := groupBy(records, func(r types.Record) int { return r.Season })
	return means(groups, types.SeasonName)
}

// ByWeekend returns the mean rental count per weekend indicator.
func ByWeekend(records []types.Record) []Mean {
	groups := groupBy(records, types.Record.WeekendIndicator)
	return means(groups, types.WeekendLabel)
}

// BySeasonWeekend returns the two-key mean reshaped wide.
func BySeasonWeekend(records []types.Record) Wide {
	present := make(map[int]bool)
	for _, r := range records {
		present[r.WeekendIndicator()] = true
	}
	columns := sortedKeys(present)

	wide := Wide{Columns: columns, Rows: []WideRow{}}
	if columns == nil {
		wide.Columns = []int{}
	}

	bySeason := groupBy(records, func(r types.Record) int { return r.Season })
	for _, season := range sortedGroupKeys(bySeason) {
		split := groupBy(bySeason[season], types.Record.WeekendIndicator)

		row := WideRow{Season: season, Label: types.SeasonName(season), Cells: make([]Cell, len(columns))}
		for i, indicator := range columns {
			if counts, ok := split[indicator]; ok {
				row.Cells[i] = Cell{Mean: mean(countsOf(counts)), Valid: true}
			}
		}
		wide.Rows = append(wide.Rows, row)
	}

	return wide
}

// Describe computes the descriptive statistics of the rental count.
func Describe(records []types.Record) Stats {
	if len(records) == 0 {
		return Stats{}
	}

	counts := countsOf(records)
	s := series.New(counts, series.Int, "cnt")

	total := 0
	for _, c := range counts {
		total += c
	}

	stats := Stats{
		Days:   len(counts),
		Total:  total,
		Mean:   s.Mean(),
		Min:    s.Min(),
		Median: s.Median(),
		Max:    s.Max(),
	}
	if len(counts) > 1 {
		stats.StdDev = s.StdDev()
	}
	return stats
}

// =============================================================================
// HELPERS
// =============================================================================

func groupBy(records []types.Record, key func(types.Record) int) map[int][]types.Record {
	groups := make(map[int][]types.Record)
	for _, r := range records {
		k := key(r)
		groups[k] = append(groups[k], r)
	}
	return groups
}

func means(groups map[int][]types.Record, label func(int) string) []Mean {
	out := make([]Mean, 0, len(groups))
	for _, k := range sortedGroupKeys(groups) {
		out = append(out, Mean{
			Key:   k,
			Label: label(k),
			Mean:  mean(countsOf(groups[k])),
			Days:  len(groups[k]),
		})
	}
	return out
}

// mean is undefined for an empty group; callers never pass one.
func mean(counts []int) float64 {
	if len(counts) == 0 {
		return math.NaN()
	}
	return series.New(counts, series.Int, "cnt").Mean()
}

func countsOf(records []types.Record) []int {
	counts := make([]int, len(records))
	for i, r := range records {
		counts[i] = r.Count
	}
	return counts
}

func sortedGroupKeys(groups map[int][]types.Record) []int {
	keys := make([]int, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func sortedKeys(set map[int]bool) []int {
	if len(set) == 0 {
		return nil
	}
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// =============================================================================
// Bike Sharing Dashboard - Shared Types
// =============================================================================
//
// This package contains the record type shared by the loader, the filter,
// the aggregator and the presenters. Keeping it here avoids import cycles
// between those packages.
//
// =============================================================================

package types

import (
	"fmt"
	"time"
)

// DateLayout is the layout used whenever a record date is printed.
const DateLayout = "2006-01-02"

// =============================================================================
// RENTAL RECORD
// =============================================================================

// Record is one row of the rental dataset: the rentals of a single day.
type Record struct {
	// Date is the calendar day (dteday), at midnight UTC.
	Date time.Time `json:"date"`

	// Season is the season code, 1 to 4.
	Season int `json:"season"`

	// Weekday is the weekday code, 0 to 6.
	Weekday int `json:"weekday"`

	// Count is the number of rentals on that day (cnt).
	Count int `json:"cnt"`

	// IsWeekend is derived from Weekday once, at load time.
	IsWeekend bool `json:"isWeekend"`
}

// WeekendIndicator returns 1 for weekend records and 0 otherwise.
func (r Record) WeekendIndicator() int {
	if r.IsWeekend {
		return 1
	}
	return 0
}

// =============================================================================
// SEASONS
// =============================================================================

// Season codes. SeasonAll is the selector sentinel meaning "no season filter".
const (
	SeasonAll    = 0
	SeasonSpring = 1
	SeasonSummer = 2
	SeasonFall   = 3
	SeasonWinter = 4
)

// SeasonCodes lists the four concrete season codes in display order.
var SeasonCodes = []int{SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter}

var seasonNames = map[int]string{
	SeasonAll:    "All seasons",
	SeasonSpring: "Spring",
	SeasonSummer: "Summer",
	SeasonFall:   "Fall",
	SeasonWinter: "Winter",
}

// SeasonName returns the display name of a season code or of the sentinel.
func SeasonName(code int) string {
	if name, ok := seasonNames[code]; ok {
		return name
	}
	return fmt.Sprintf("Season %d", code)
}

// SeasonAxisCaption is the axis caption used by every per-season chart.
const SeasonAxisCaption = "Season (1: Spring, 2: Summer, 3: Fall, 4: Winter)"

// WeekendLabel returns the legend label of a weekend indicator.
func WeekendLabel(indicator int) string {
	if indicator == 1 {
		return "Weekend"
	}
	return "Weekday"
}

// =============================================================================
// Bike Sharing Dashboard - Filter Controller
// =============================================================================
//
// A Selection is the whole state of the dashboard controls. Apply reduces a
// record slice to the rows that satisfy all three predicates:
//
//   Start <= date <= End  AND  MinCount <= cnt <= MaxCount
//   AND (Season == SeasonAll OR season == Season)
//
// Apply is a pure boolean mask: it never reorders, never mutates the input
// and applying it twice gives the same result as applying it once.
//
// =============================================================================

package filter

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ginjaninja78/bike-sharing-dashboard/internal/dataset"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/types"
)

// ErrInvalidSelection is returned by Validate for a selection no control
// could produce.
var ErrInvalidSelection = errors.New("invalid filter selection")

// Selection is the current state of the three filter controls.
type Selection struct {
	// Start and End bound the date range, both inclusive.
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	// MinCount and MaxCount bound the rental count, both inclusive.
	MinCount int `json:"minCount" validate:"min=0"`
	MaxCount int `json:"maxCount" validate:"gtefield=MinCount"`

	// Season is a season code, or types.SeasonAll for no season filter.
	Season int `json:"season" validate:"min=0,max=4"`
}

var validate = validator.New()

// Validate checks the selection's own consistency.
func (s Selection) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}
	if s.End.Before(s.Start) {
		return fmt.Errorf("%w: end date %s is before start date %s",
			ErrInvalidSelection, s.End.Format(types.DateLayout), s.Start.Format(types.DateLayout))
	}
	return nil
}

// Matches reports whether one record satisfies the selection.
func (s Selection) Matches(r types.Record) bool {
	if r.Date.Before(s.Start) || r.Date.After(s.End) {
		return false
	}
	if r.Count < s.MinCount || r.Count > s.MaxCount {
		return false
	}
	return s.Season == types.SeasonAll || r.Season == s.Season
}

// Apply returns the records matching the selection, in input order.
// The result is a new slice; an empty result is never nil.
func Apply(records []types.Record, s Selection) []types.Record {
	filtered := make([]types.Record, 0, len(records))
	for _, r := range records {
		if s.Matches(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Default returns the initial selection: the full date range of the data,
// the configured count window clamped into the data's count range, and all
// seasons.
func Default(b dataset.Bounds, minCount, maxCount int) Selection {
	s := Selection{
		Start:    b.MinDate,
		End:      b.MaxDate,
		MinCount: minCount,
		MaxCount: maxCount,
		Season:   types.SeasonAll,
	}
	return s.Clamp(b)
}

// Clamp bounds the selection to the data range, as the date picker and the
// count slider do. Each interval is narrowed to its overlap with the data;
// an interval that misses the data entirely is kept as is, so Apply still
// returns nothing for it. An empty dataset leaves the selection unchanged.
func (s Selection) Clamp(b dataset.Bounds) Selection {
	if b.Empty() {
		return s
	}

	if !s.Start.After(b.MaxDate) && !s.End.Before(b.MinDate) {
		s.Start = clampTime(s.Start, b.MinDate, b.MaxDate)
		s.End = clampTime(s.End, b.MinDate, b.MaxDate)
	}
	if s.MinCount <= b.MaxCount && s.MaxCount >= b.MinCount {
		s.MinCount = clampInt(s.MinCount, b.MinCount, b.MaxCount)
		s.MaxCount = clampInt(s.MaxCount, b.MinCount, b.MaxCount)
	}
	return s
}

// Describe renders the selection for logs and page captions.
func (s Selection) Describe() string {
	return fmt.Sprintf("%s to %s, %d to %d rentals, %s",
		s.Start.Format(types.DateLayout), s.End.Format(types.DateLayout),
		s.MinCount, s.MaxCount, types.SeasonName(s.Season))
}

func clampTime(t, lo, hi time.Time) time.Time {
	if t.IsZero() || t.Before(lo) {
		return lo
	}
	if t.After(hi) {
		return hi
	}
	return t
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

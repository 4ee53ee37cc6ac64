package filter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ginjaninja78/bike-sharing-dashboard/internal/dataset"
)

// Query parameter names shared by the HTTP dashboard and the CLI flags.
const (
	ParamStart   = "start"
	ParamEnd     = "end"
	ParamMin     = "min"
	ParamMax     = "max"
	ParamSeason  = "season"
	ParamPreview = "preview"
)

// FromQuery overlays the query parameters on a default selection. Absent
// or empty parameters keep the default; values that do not parse, and
// selections that fail Validate, return an error wrapping
// ErrInvalidSelection.
//
// RETURNS:
//   - The selection (not yet clamped).
//   - Whether the raw-row preview is requested.
func FromQuery(values url.Values, def Selection) (Selection, bool, error) {
	sel := def
	var err error

	if v := values.Get(ParamStart); v != "" {
		if sel.Start, err = dataset.ParseDate(v); err != nil {
			return def, false, fmt.Errorf("%w: %s: %v", ErrInvalidSelection, ParamStart, err)
		}
	}
	if v := values.Get(ParamEnd); v != "" {
		if sel.End, err = dataset.ParseDate(v); err != nil {
			return def, false, fmt.Errorf("%w: %s: %v", ErrInvalidSelection, ParamEnd, err)
		}
	}
	if v := values.Get(ParamMin); v != "" {
		if sel.MinCount, err = strconv.Atoi(v); err != nil {
			return def, false, fmt.Errorf("%w: %s: %v", ErrInvalidSelection, ParamMin, err)
		}
	}
	if v := values.Get(ParamMax); v != "" {
		if sel.MaxCount, err = strconv.Atoi(v); err != nil {
			return def, false, fmt.Errorf("%w: %s: %v", ErrInvalidSelection, ParamMax, err)
		}
	}
	if v := values.Get(ParamSeason); v != "" {
		if sel.Season, err = strconv.Atoi(v); err != nil {
			return def, false, fmt.Errorf("%w: %s: %v", ErrInvalidSelection, ParamSeason, err)
		}
	}

	preview, err := parseFlag(values.Get(ParamPreview))
	if err != nil {
		return def, false, fmt.Errorf("%w: %s: %v", ErrInvalidSelection, ParamPreview, err)
	}

	if err := sel.Validate(); err != nil {
		return def, false, err
	}
	return sel, preview, nil
}

// parseFlag accepts the checkbox value "on" as well as strconv booleans.
func parseFlag(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "":
		return false, nil
	case "on":
		return true, nil
	}
	return strconv.ParseBool(v)
}

package cmd

import (
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/bike-sharing-dashboard/internal/filter"
)

// selectionFlags are the filter controls of the report and summary
// commands. Unset flags keep the dashboard's default selection.
type selectionFlags struct {
	start   string
	end     string
	min     int
	max     int
	season  int
	preview bool
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.start, filter.ParamStart, "", "First day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, filter.ParamEnd, "", "Last day to include (YYYY-MM-DD)")
	cmd.Flags().IntVar(&f.min, filter.ParamMin, 0, "Minimum daily rentals")
	cmd.Flags().IntVar(&f.max, filter.ParamMax, 0, "Maximum daily rentals")
	cmd.Flags().IntVar(&f.season, filter.ParamSeason, 0, "Season: 0 all, 1 Spring, 2 Summer, 3 Fall, 4 Winter")
	cmd.Flags().BoolVar(&f.preview, filter.ParamPreview, false, "Include the raw-row preview")
}

// values encodes the flags the user set, in the dashboard's query form.
func (f *selectionFlags) values(cmd *cobra.Command) url.Values {
	v := url.Values{}
	set := func(name, value string) {
		if cmd.Flags().Changed(name) {
			v.Set(name, value)
		}
	}

	set(filter.ParamStart, f.start)
	set(filter.ParamEnd, f.end)
	set(filter.ParamMin, strconv.Itoa(f.min))
	set(filter.ParamMax, strconv.Itoa(f.max))
	set(filter.ParamSeason, strconv.Itoa(f.season))
	set(filter.ParamPreview, strconv.FormatBool(f.preview))
	return v
}

// selection resolves the flags against the default selection.
func (f *selectionFlags) selection(cmd *cobra.Command, def filter.Selection) (filter.Selection, bool, error) {
	return filter.FromQuery(f.values(cmd), def)
}

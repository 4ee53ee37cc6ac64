// =============================================================================
// Bike Sharing Dashboard - HTML Presenter
// =============================================================================
//
// Renders the dashboard page: the filter sidebar (bounded by the data range),
// the optional preview, the statistics, the three aggregate tables and a
// frame holding the interactive charts.
//
// The same template serves the live page and the static report; the static
// variant drops the sidebar and points the frame at a chart file.
//
// =============================================================================

package presenter

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/ginjaninja78/bike-sharing-dashboard/internal/dashboard"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/filter"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/types"
)

//go:embed templates/dashboard.html
var templateFiles embed.FS

// PageOptions controls the page chrome around the view.
type PageOptions struct {
	// ChartsURL is the frame source; empty hides the charts.
	ChartsURL string

	// ExportURL is the workbook download link; empty hides it.
	ExportURL string

	// Static drops the filter sidebar.
	Static bool
}

type seasonOption struct {
	Code     int
	Name     string
	Selected bool
}

type page struct {
	PageOptions
	View    *dashboard.View
	Seasons []seasonOption

	Preview       *Table
	Stats         Table
	Season        Table
	Weekend       Table
	SeasonWeekend Table
}

// HTML renders the dashboard page.
type HTML struct {
	tmpl *template.Template
}

// NewHTML parses the embedded page template.
func NewHTML() (*HTML, error) {
	tmpl, err := template.New("dashboard.html").
		Funcs(template.FuncMap{"date": formatDate}).
		ParseFS(templateFiles, "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard template: %w", err)
	}
	return &HTML{tmpl: tmpl}, nil
}

// Render writes the page for a view.
func (h *HTML) Render(w io.Writer, view *dashboard.View, opts PageOptions) error {
	data := page{
		PageOptions:   opts,
		View:          view,
		Seasons:       seasonOptions(view.Selection.Season),
		Preview:       PreviewTable(view),
		Stats:         StatsTable(view),
		Season:        SeasonTable(view),
		Weekend:       WeekendTable(view),
		SeasonWeekend: SeasonWeekendTable(view),
	}

	if err := h.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render dashboard page: %w", err)
	}
	return nil
}

// Query encodes a selection as the dashboard's query parameters, so the
// charts frame and the export link reproduce the same view.
func Query(sel filter.Selection, preview bool) string {
	v := url.Values{}
	v.Set("start", formatDate(sel.Start))
	v.Set("end", formatDate(sel.End))
	v.Set("min", strconv.Itoa(sel.MinCount))
	v.Set("max", strconv.Itoa(sel.MaxCount))
	v.Set("season", strconv.Itoa(sel.Season))
	if preview {
		v.Set("preview", "on")
	}
	return v.Encode()
}

func seasonOptions(selected int) []seasonOption {
	codes := append([]int{types.SeasonAll}, types.SeasonCodes...)
	options := make([]seasonOption, len(codes))
	for i, code := range codes {
		options[i] = seasonOption{Code: code, Name: types.SeasonName(code), Selected: code == selected}
	}
	return options
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(types.DateLayout)
}

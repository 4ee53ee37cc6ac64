// =============================================================================
// Bike Sharing Dashboard - Dashboard Pipeline
// =============================================================================
//
// This module runs the whole dashboard computation for one selection. It is
// called once per interaction (HTTP request or CLI run) and always starts
// from the full loaded table; nothing is cached between calls.
//
// PIPELINE:
//   1. Filter the full table with the selection
//   2. Build the raw-row preview frame (when requested)
//   3. Compute the descriptive statistics
//   4. Compute the season and weekend means and the wide table
//
// The View it returns is everything the presenters need.
//
// =============================================================================

package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/ginjaninja78/bike-sharing-dashboard/internal/aggregate"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/dataset"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/filter"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/types"
)

// Page captions shared by every presenter.
const (
	Title    = "Bike Sharing Data Dashboard"
	Subtitle = "Rental analysis by season and day"
)

// DefaultPreviewRows is used when Options.PreviewRows is not positive.
const DefaultPreviewRows = 5

// =============================================================================
// VIEW MODEL
// =============================================================================

// View is the render-ready result of one pipeline run.
type View struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`

	// Selection is the (clamped) selection the view was computed for.
	Selection filter.Selection `json:"selection"`

	// Bounds are the extremes of the full table, for the controls.
	Bounds dataset.Bounds `json:"bounds"`

	// TotalRecords is the size of the full table.
	TotalRecords int `json:"totalRecords"`

	// Filtered is the filtered subset, in file order.
	Filtered []types.Record `json:"filtered"`

	// ShowPreview toggles the raw-row preview.
	ShowPreview bool   `json:"showPreview"`
	Preview     *Table `json:"preview,omitempty"`

	Stats         aggregate.Stats  `json:"stats"`
	SeasonMeans   []aggregate.Mean `json:"seasonMeans"`
	WeekendMeans  []aggregate.Mean `json:"weekendMeans"`
	SeasonWeekend aggregate.Wide   `json:"seasonWeekend"`
}

// Empty reports whether the filtered subset has no rows.
func (v *View) Empty() bool {
	return len(v.Filtered) == 0
}

// =============================================================================
// BUILDER
// =============================================================================

// Options configures a Builder.
type Options struct {
	// PreviewRows is the number of rows in the preview. Default: 5
	PreviewRows int

	// DefaultMinCount and DefaultMaxCount are the initial count window.
	DefaultMinCount int
	DefaultMaxCount int
}

// Builder runs the pipeline over one loaded dataset.
type Builder struct {
	data   *dataset.Dataset
	opts   Options
	logger *slog.Logger
}

// NewBuilder creates a builder over a loaded dataset.
func NewBuilder(data *dataset.Dataset, opts Options, logger *slog.Logger) *Builder {
	if opts.PreviewRows <= 0 {
		opts.PreviewRows = DefaultPreviewRows
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		data:   data,
		opts:   opts,
		logger: logger.With(slog.String("component", "dashboard")),
	}
}

// Dataset returns the dataset the builder reads from.
func (b *Builder) Dataset() *dataset.Dataset {
	return b.data
}

// DefaultSelection returns the selection shown before any interaction.
func (b *Builder) DefaultSelection() filter.Selection {
	return filter.Default(b.data.Bounds, b.opts.DefaultMinCount, b.opts.DefaultMaxCount)
}

// Build runs the full pipeline for a selection.
func (b *Builder) Build(ctx context.Context, sel filter.Selection, showPreview bool) *View {
	start := time.Now()

	sel = sel.Clamp(b.data.Bounds)
	filtered := filter.Apply(b.data.Records, sel)

	view := &View{
		Title:         Title,
		Subtitle:      Subtitle,
		Selection:     sel,
		Bounds:        b.data.Bounds,
		TotalRecords:  len(b.data.Records),
		Filtered:      filtered,
		ShowPreview:   showPreview,
		Stats:         aggregate.Describe(filtered),
		SeasonMeans:   aggregate.BySeason(filtered),
		WeekendMeans:  aggregate.ByWeekend(filtered),
		SeasonWeekend: aggregate.BySeasonWeekend(filtered),
	}

	if showPreview {
		preview, err := PreviewTable(filtered, b.opts.PreviewRows)
		if err != nil {
			b.logger.WarnContext(ctx, "preview frame failed", slog.String("error", err.Error()))
		} else {
			view.Preview = preview
		}
	}

	b.logger.DebugContext(ctx, "dashboard built",
		slog.String("selection", sel.Describe()),
		slog.Int("total", view.TotalRecords),
		slog.Int("filtered", len(filtered)),
		slog.Duration("elapsed", time.Since(start)))

	return view
}

// Package charts renders the three dashboard charts: mean rentals per season,
// mean rentals per season split by weekday/weekend, and daily rentals over
// time. Interactive charts use go-echarts; static PNGs use gonum/plot.
package charts

import (
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ginjaninja78/bike-sharing-dashboard/internal/dashboard"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/types"
)

// Chart titles and axis captions.
const (
	SeasonTitle        = "Average Bike Rentals per Season"
	SeasonWeekendTitle = "Average Bike Rentals per Season (Weekday vs Weekend)"
	DailyTitle         = "Daily Bike Rental Trend"

	RentalsAxis = "Rentals"
	DateAxis    = "Date"
)

const (
	chartWidth  = "900px"
	chartHeight = "450px"
)

// missing is how echarts is told a bar has no value.
const missing = "-"

// SeasonBar builds the bar chart of mean rentals per season.
func SeasonBar(view *dashboard.View) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: SeasonTitle}),
		charts.WithXAxisOpts(opts.XAxis{Name: types.SeasonAxisCaption}),
		charts.WithYAxisOpts(opts.YAxis{Name: RentalsAxis}),
	)

	labels := make([]string, len(view.SeasonMeans))
	data := make([]opts.BarData, len(view.SeasonMeans))
	for i, m := range view.SeasonMeans {
		labels[i] = m.Label
		data[i] = opts.BarData{Name: m.Label, Value: round(m.Mean)}
	}

	bar.SetXAxis(labels).AddSeries("Average Rentals", data)
	return bar
}

// SeasonWeekendBar builds the grouped bar chart: one group per season, one
// bar per weekend indicator present in the filtered data.
func SeasonWeekendBar(view *dashboard.View) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: SeasonWeekendTitle}),
		charts.WithXAxisOpts(opts.XAxis{Name: types.SeasonAxisCaption}),
		charts.WithYAxisOpts(opts.YAxis{Name: RentalsAxis}),
	)

	wide := view.SeasonWeekend
	labels := make([]string, len(wide.Rows))
	for i, row := range wide.Rows {
		labels[i] = row.Label
	}
	bar.SetXAxis(labels)

	for _, indicator := range wide.Columns {
		cells := wide.Column(indicator)
		data := make([]opts.BarData, len(cells))
		for i, c := range cells {
			if c.Valid {
				data[i] = opts.BarData{Value: round(c.Mean)}
			} else {
				data[i] = opts.BarData{Value: missing}
			}
		}
		bar.AddSeries(types.WeekendLabel(indicator), data)
	}

	return bar
}

// DailyLine builds the line chart of raw daily rentals over the date.
func DailyLine(view *dashboard.View) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: DailyTitle}),
		charts.WithXAxisOpts(opts.XAxis{Name: DateAxis}),
		charts.WithYAxisOpts(opts.YAxis{Name: RentalsAxis}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)

	dates := make([]string, len(view.Filtered))
	data := make([]opts.LineData, len(view.Filtered))
	for i, r := range view.Filtered {
		dates[i] = r.Date.Format(types.DateLayout)
		data[i] = opts.LineData{Value: r.Count}
	}

	line.SetXAxis(dates).AddSeries(RentalsAxis, data)
	return line
}

// Page assembles the three charts in presentation order.
func Page(view *dashboard.View) *components.Page {
	page := components.NewPage()
	page.PageTitle = view.Title
	page.AddCharts(
		SeasonBar(view),
		SeasonWeekendBar(view),
		DailyLine(view),
	)
	return page
}

// RenderPage writes the standalone chart page as HTML.
func RenderPage(w io.Writer, view *dashboard.View) error {
	return Page(view).Render(w)
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}

package charts

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/ginjaninja78/bike-sharing-dashboard/internal/dashboard"
	"github.com/ginjaninja78/bike-sharing-dashboard/internal/types"
)

// Static chart settings.
const (
	PNGWidth  = 8 * vg.Inch
	PNGHeight = 5 * vg.Inch

	barWidth = 28
)

// WritePNGs saves the three charts as PNG files in dir. File names are
// base + "_season.png", "_season_weekend.png" and "_daily.png". Empty data
// gives empty plots, not errors.
//
// RETURNS:
//   - The paths written, in presentation order. On a save error the failed
//     path is included, since the file may exist partially written.
func WritePNGs(view *dashboard.View, dir, base string) ([]string, error) {
	builders := []struct {
		suffix string
		build  func(*dashboard.View) (*plot.Plot, error)
	}{
		{"_season.png", seasonPlot},
		{"_season_weekend.png", seasonWeekendPlot},
		{"_daily.png", dailyPlot},
	}

	paths := make([]string, 0, len(builders))
	for _, b := range builders {
		p, err := b.build(view)
		if err != nil {
			return paths, fmt.Errorf("failed to build %s chart: %w", b.suffix, err)
		}

		path := filepath.Join(dir, base+b.suffix)
		if err := p.Save(PNGWidth, PNGHeight, path); err != nil {
			return append(paths, path), fmt.Errorf("failed to save %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	return paths, nil
}

func newPlot(title, xLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = RentalsAxis
	p.Add(plotter.NewGrid())
	return p
}

func seasonPlot(view *dashboard.View) (*plot.Plot, error) {
	p := newPlot(SeasonTitle, types.SeasonAxisCaption)
	if len(view.SeasonMeans) == 0 {
		return p, nil
	}

	values := make(plotter.Values, len(view.SeasonMeans))
	labels := make([]string, len(view.SeasonMeans))
	for i, m := range view.SeasonMeans {
		values[i] = m.Mean
		labels[i] = m.Label
	}

	bars, err := plotter.NewBarChart(values, vg.Points(barWidth*2))
	if err != nil {
		return nil, err
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = plotutil.Color(0)

	p.Add(bars)
	p.NominalX(labels...)
	return p, nil
}

func seasonWeekendPlot(view *dashboard.View) (*plot.Plot, error) {
	p := newPlot(SeasonWeekendTitle, types.SeasonAxisCaption)
	wide := view.SeasonWeekend
	if len(wide.Rows) == 0 {
		return p, nil
	}

	labels := make([]string, len(wide.Rows))
	for i, row := range wide.Rows {
		labels[i] = row.Label
	}

	n := len(wide.Columns)
	for i, indicator := range wide.Columns {
		cells := wide.Column(indicator)
		values := make(plotter.Values, len(cells))
		for j, c := range cells {
			// gonum has no missing-bar value; an absent pair draws nothing.
			if c.Valid {
				values[j] = c.Mean
			}
		}

		bars, err := plotter.NewBarChart(values, vg.Points(barWidth))
		if err != nil {
			return nil, err
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(indicator)
		bars.Offset = vg.Points(barWidth * (float64(i) - float64(n-1)/2))

		p.Add(bars)
		p.Legend.Add(types.WeekendLabel(indicator), bars)
	}

	p.Legend.Top = true
	p.NominalX(labels...)
	return p, nil
}

func dailyPlot(view *dashboard.View) (*plot.Plot, error) {
	p := newPlot(DailyTitle, DateAxis)
	p.X.Tick.Marker = plot.TimeTicks{Format: types.DateLayout}
	if len(view.Filtered) == 0 {
		return p, nil
	}

	points := make(plotter.XYs, len(view.Filtered))
	for i, r := range view.Filtered {
		points[i].X = float64(r.Date.Unix())
		points[i].Y = float64(r.Count)
	}

	line, err := plotter.NewLine(points)
	if err != nil {
		return nil, err
	}
	line.Color = plotutil.Color(2)

	p.Add(line)
	return p, nil
}

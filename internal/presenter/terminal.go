package presenter

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/ginjaninja78/bike-sharing-dashboard/internal/dashboard"
)

// Terminal prints a view as plain-text tables.
type Terminal struct {
	w       io.Writer
	heading *color.Color
	notice  *color.Color
}

// NewTerminal creates a terminal presenter. With colorize false the output
// carries no escape codes.
func NewTerminal(w io.Writer, colorize bool) *Terminal {
	heading := color.New(color.FgCyan, color.Bold)
	notice := color.New(color.FgYellow)
	if !colorize {
		heading.DisableColor()
		notice.DisableColor()
	}
	return &Terminal{w: w, heading: heading, notice: notice}
}

// Render prints the title, the selection, the optional preview, the
// statistics and the three aggregate tables, in that order.
func (t *Terminal) Render(view *dashboard.View) error {
	if _, err := t.heading.Fprintf(t.w, "\n=== %s ===\n", view.Title); err != nil {
		return fmt.Errorf("failed to write title: %w", err)
	}
	fmt.Fprintln(t.w, view.Subtitle)
	fmt.Fprintf(t.w, "Selection: %s\n", view.Selection.Describe())
	fmt.Fprintf(t.w, "Rows: %d of %d\n", len(view.Filtered), view.TotalRecords)

	if view.Empty() {
		t.notice.Fprintln(t.w, "No records match the selection.")
	}

	if preview := PreviewTable(view); preview != nil {
		t.table(*preview)
	}
	t.table(StatsTable(view))
	t.table(SeasonTable(view))
	t.table(WeekendTable(view))
	t.table(SeasonWeekendTable(view))

	return nil
}

func (t *Terminal) table(tbl Table) {
	t.heading.Fprintf(t.w, "\n%s\n", tbl.Title)

	table := tablewriter.NewWriter(t.w)
	table.SetHeader(tbl.Columns)
	table.SetAutoFormatHeaders(false)
	for _, row := range tbl.Rows {
		table.Append(row)
	}
	table.Render()
}

package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/bike-sharing-dashboard/internal/presenter"
)

var summaryFlags selectionFlags

// summaryCmd prints the dashboard tables to the terminal.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the statistics and average tables for a selection",
	Example: `  bikedash summary
  bikedash summary --start 2011-06-01 --end 2011-08-31 --season 2 --preview`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		sel, preview, err := summaryFlags.selection(cmd, a.builder.DefaultSelection())
		if err != nil {
			return err
		}

		view := a.builder.Build(cmd.Context(), sel, preview)
		return presenter.NewTerminal(os.Stdout, !color.NoColor).Render(view)
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryFlags.register(summaryCmd)
}

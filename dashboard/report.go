package main

import (
	"fmt"
	"io"
	"os"

	"github.com/patricioibar/points-dashboard/filter"
	"github.com/patricioibar/points-dashboard/render"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute one report and print it",
	Long: `Compute the dashboard for a single filter selection.

Each filter flag may be repeated or comma-separated. A stage left empty is
not filtered; --all selects every option the way the dashboard opens.

Examples:
  # Seasons 3 and 4, one store, as tables
  report --season "Season 3" --season "Season 4" --store "Loja Centro"

  # Everything, as YAML
  report --all --format yaml --output report.yaml`,
	RunE: runReport,
}

func init() {
	f := reportCmd.Flags()
	f.StringSlice("season", nil, "season labels, e.g. \"Season 3\"")
	f.StringSlice("month", nil, "month labels, e.g. \"Jan (01)\"")
	f.StringSlice("store", nil, "stores")
	f.StringSlice("segment", nil, "segments")
	f.Bool("all", false, "select every available option")
	f.String("format", render.FormatText, "output format: text, json or yaml")
	f.String("output", "", "output file path (default: stdout)")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	d, _, err := setup(cmd)
	if err != nil {
		return err
	}

	var sel filter.Selection
	if all, _ := cmd.Flags().GetBool("all"); all {
		sel = d.DefaultSelection()
	} else {
		sel.Seasons, _ = cmd.Flags().GetStringSlice("season")
		sel.Months, _ = cmd.Flags().GetStringSlice("month")
		sel.Stores, _ = cmd.Flags().GetStringSlice("store")
		sel.Segments, _ = cmd.Flags().GetStringSlice("segment")
	}

	var out io.Writer = cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer file.Close()
		out = file
	}

	format, _ := cmd.Flags().GetString("format")
	report := d.Compute(sel)
	log.Infof("Report %s computed", report.RunID)
	return render.Write(out, format, report)
}

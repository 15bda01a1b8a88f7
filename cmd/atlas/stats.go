package main

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show headline numbers for the index and study progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			app, err := openApp()
			if err != nil {
				return err
			}
			defer closeApp(app)

			stats, err := app.Atlas.Stats(context.Background())
			if err != nil {
				return err
			}

			if format == formatJSON {
				return outputJSON(cmd, stats)
			}

			settings := app.Settings
			t := newTable(cmd)
			t.AppendRows([]table.Row{
				{"Sections", stats.TotalSections},
				{"Problems", stats.TotalProblems},
				{settings.PrimaryLabel + " solutions", stats.PrimarySolutions},
				{settings.SecondaryLabel + " solutions", stats.SecondarySolutions},
				{"Exact matches", stats.ExactMatches},
				{"Approximate matches", stats.ApproximateMatches},
				{"Coverage", fmt.Sprintf("%.1f%%", stats.CoveragePercentage)},
				{"Completed tasks", stats.CompletedTasks},
			})
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")

	return cmd
}

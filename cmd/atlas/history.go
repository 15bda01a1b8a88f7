package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past rebuilds, newest first",
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

			runs, err := app.Atlas.History(context.Background(), limit)
			if err != nil {
				return err
			}

			if format == formatJSON {
				return outputJSON(cmd, runs)
			}

			t := newTable(cmd)
			t.AppendHeader(table.Row{"Started", "Took", "Files", "Exact", "Approx", "Missing", "Coverage", "Index"})
			for _, run := range runs {
				t.AppendRow(table.Row{
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					run.Duration().Round(time.Millisecond),
					fmt.Sprintf("%d/%d", run.PrimaryCount, run.SecondaryCount),
					run.ExactCount,
					run.ApproximateCount,
					run.MissingCount,
					fmt.Sprintf("%.1f%%", run.CoveragePercentage),
					shortHash(run.IndexHash),
				})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of rebuilds to show (0 for all)")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")

	return cmd
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

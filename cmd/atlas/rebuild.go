package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/a2zdsa/atlas/internal/usecase"
)

func newRebuildCmd() *cobra.Command {
	var (
		withPlan bool
		seed     uint64
		format   string
	)

	cmd := &cobra.Command{
		Use:   "rebuild",
		Short: "Scan both collections and rewrite the topic index and mappings",
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

			opts := usecase.RebuildOptions{RegeneratePlan: withPlan}
			if cmd.Flags().Changed("seed") {
				s := seed
				opts.RegeneratePlan = true
				opts.Plan.Seed = &s
			}

			result, err := app.Atlas.Rebuild(context.Background(), opts)
			if err != nil {
				return err
			}

			if format == formatJSON {
				return outputJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			stats := result.Stats
			fmt.Fprintf(out, "Rebuilt %d topics from %d primary and %d secondary files in %s\n",
				result.Topics, result.Run.PrimaryCount, result.Run.SecondaryCount, result.Run.Duration().Round(time.Millisecond))
			fmt.Fprintf(out, "Problems: %d (exact %d, approximate %d, missing %d)\n",
				stats.TotalProblems, stats.ExactMatches, stats.ApproximateMatches, result.Run.MissingCount)
			fmt.Fprintf(out, "Coverage: %.1f%%\n", stats.CoveragePercentage)
			if result.Plan != nil {
				fmt.Fprintf(out, "Study plan: %d tasks, %d minutes total\n", result.Plan.TotalTasks, result.Plan.TotalMinutes)
			}
			for _, task := range result.Oversized {
				fmt.Fprintf(out, "warning: %s needs %d minutes, more than a day's budget\n", task.ID, task.EstimatedMinutes)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withPlan, "plan", false, "Also regenerate the study plan")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for review placement (implies --plan)")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")

	return cmd
}

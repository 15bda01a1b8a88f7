package main

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/a2zdsa/atlas/internal/atlas"
	"github.com/a2zdsa/atlas/internal/usecase"
)

type dayOutput struct {
	Date         string            `json:"date"`
	DayName      string            `json:"day_name"`
	Tasks        []atlas.StudyTask `json:"tasks"`
	TotalMinutes int               `json:"total_minutes"`
}

func newDayOutput(day atlas.DayPlan) dayOutput {
	tasks := day.Tasks
	if tasks == nil {
		tasks = []atlas.StudyTask{}
	}
	return dayOutput{
		Date:         day.Date.Format(atlas.DateLayout),
		DayName:      day.DayName,
		Tasks:        tasks,
		TotalMinutes: day.Minutes(),
	}
}

func newPlanCmd() *cobra.Command {
	var (
		all        bool
		regenerate bool
		seed       uint64
		budget     int
		days       int
		format     string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show today's study tasks, or the whole plan with --all",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			if budget < 0 || days < 0 {
				return fmt.Errorf("--budget and --days must not be negative")
			}

			app, err := openApp()
			if err != nil {
				return err
			}
			defer closeApp(app)

			ctx := context.Background()
			flags := cmd.Flags()
			if regenerate || flags.Changed("seed") || flags.Changed("budget") || flags.Changed("days") {
				opts := usecase.PlanOptions{Days: days, DailyBudgetMinutes: budget}
				if flags.Changed("seed") {
					s := seed
					opts.Seed = &s
				}
				if _, err := app.Atlas.GeneratePlan(ctx, opts); err != nil {
					return err
				}
			}

			if all {
				plan, err := app.Atlas.Plan(ctx)
				if err != nil {
					return err
				}
				if format == formatJSON {
					return outputJSON(cmd, plan)
				}
				outputPlan(cmd, plan)
				return nil
			}

			day, err := app.Atlas.TodayPlan(ctx)
			if err != nil {
				return err
			}
			if format == formatJSON {
				return outputJSON(cmd, newDayOutput(day))
			}
			outputDay(cmd, day)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Show every day of the plan")
	cmd.Flags().BoolVar(&regenerate, "regenerate", false, "Generate a fresh plan from the current index")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for review placement (implies --regenerate)")
	cmd.Flags().IntVar(&budget, "budget", 0, "Daily budget in minutes (implies --regenerate)")
	cmd.Flags().IntVar(&days, "days", 0, "Plan length in days (implies --regenerate)")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")

	return cmd
}

func outputPlan(cmd *cobra.Command, plan atlas.StudyPlan) {
	out := cmd.OutOrStdout()
	for i, day := range plan.Days {
		if i > 0 {
			fmt.Fprintln(out)
		}
		outputDay(cmd, day)
	}

	summary := plan.Summary()
	fmt.Fprintf(out, "\n%d tasks, %d minutes total, %d minutes per day on average\n",
		summary.TotalTasks, summary.TotalMinutes, summary.AverageDailyMinutes)
}

func outputDay(cmd *cobra.Command, day atlas.DayPlan) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d tasks, %d minutes\n", day.Key(), len(day.Tasks), day.Minutes())
	if len(day.Tasks) == 0 {
		return
	}

	ids := make([]string, len(day.Tasks))
	for i, task := range day.Tasks {
		ids[i] = task.ID
	}
	idWidth := columnWidth("ID", ids, maxIDWidth)
	// Done, Type, Difficulty, Priority, Min
	titleWidth := flexWidth(getTerminalWidth(), 4, idWidth, 9, 10, 8, 4)

	t := newTable(cmd)
	t.AppendHeader(table.Row{"Done", "ID", "Type", "Title", "Difficulty", "Priority", "Min"})
	for _, task := range day.Tasks {
		t.AppendRow(table.Row{
			checkMark(task.Completed),
			wrapString(task.ID, idWidth),
			task.Kind,
			truncate(task.Title, titleWidth),
			task.Difficulty,
			task.Priority,
			task.EstimatedMinutes,
		})
	}
	t.Render()
}

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/a2zdsa/atlas/internal/atlas"
)

// gapListLimit caps how many entries of each gap list the table output shows.
const gapListLimit = 10

func newGapsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "gaps",
		Short: "Report coverage gaps; exits 1 when critical gaps exist",
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

			report, err := app.Atlas.Coverage(context.Background())
			if err != nil {
				return err
			}

			if format == formatJSON {
				if err := outputJSON(cmd, report); err != nil {
					return err
				}
			} else {
				outputCoverageReport(cmd, report)
			}

			if report.HasCriticalGaps() {
				return &exitError{code: 1}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")

	return cmd
}

func outputCoverageReport(cmd *cobra.Command, report *atlas.CoverageReport) {
	out := cmd.OutOrStdout()
	stats := report.Statistics

	fmt.Fprintf(out, "Sections: %d\n", report.TotalSections)
	fmt.Fprintf(out, "Problems: %d (exact %d, approximate %d)\n", stats.TotalProblems, stats.ExactMatches, stats.ApproximateMatches)
	fmt.Fprintf(out, "Missing primary implementations: %d\n", stats.MissingImplementations)
	fmt.Fprintf(out, "Coverage: %.1f%%\n\n", stats.CoveragePercentage)

	titleWidth := flexWidth(getTerminalWidth(), 4, 9, 5, 8, 5)
	t := newTable(cmd)
	t.AppendHeader(table.Row{"Step", "Section", "Status", "Score", "Problems", "Files"})
	for _, section := range report.Sections {
		t.AppendRow(table.Row{
			section.StepNumber,
			truncate(section.Title, titleWidth),
			section.Status,
			fmt.Sprintf("%d%%", section.Score),
			section.ProblemCount,
			section.FileCount,
		})
	}
	t.Render()

	writeGapList(out, "Sections with no problems", report.Gaps.MissingSections)
	writeGapList(out, "Low coverage sections", report.Gaps.LowCoverage)
	writeGapList(out, "Problems missing primary solutions", report.Gaps.MissingPrimary)
	writeGapList(out, "Problems missing secondary solutions", report.Gaps.MissingSecondary)

	if len(report.Recommendations) > 0 {
		fmt.Fprintln(out, "\nRecommendations:")
		for i, rec := range report.Recommendations {
			fmt.Fprintf(out, "  %d. %s\n", i+1, rec)
		}
	}

	fmt.Fprintln(out, "\nCriteria:")
	for _, c := range report.Criteria {
		mark := "FAIL"
		if c.Passed {
			mark = "PASS"
		}
		fmt.Fprintf(out, "  [%s] %s\n", mark, c.Name)
	}

	overall := "NEEDS WORK"
	if report.Passed {
		overall = "PASS"
	}
	fmt.Fprintf(out, "\nOverall: %s\n", overall)
}

func writeGapList(out io.Writer, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%s: %d\n", label, len(items))
	shown := items
	if len(shown) > gapListLimit {
		shown = shown[:gapListLimit]
	}
	for _, item := range shown {
		fmt.Fprintf(out, "  - %s\n", item)
	}
	if rest := len(items) - len(shown); rest > 0 {
		fmt.Fprintf(out, "  (%d more)\n", rest)
	}
}

package main

import (
	"context"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/a2zdsa/atlas/internal/search"
)

func newSearchCmd() *cobra.Command {
	var (
		limit  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find problems by keywords in titles, approaches and sections",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			app, err := openApp()
			if err != nil {
				return err
			}
			defer closeApp(app)

			hits, err := app.Atlas.Search(context.Background(), strings.Join(args, " "), limit)
			if err != nil {
				return err
			}

			if format == formatJSON {
				return outputJSON(cmd, hits)
			}
			outputSearchTable(cmd, hits)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", search.DefaultLimit, "Maximum number of results")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")

	return cmd
}

func outputSearchTable(cmd *cobra.Command, hits []search.Hit) {
	ids := make([]string, len(hits))
	for i, hit := range hits {
		ids[i] = hit.Record.ProblemID
	}
	idWidth := columnWidth("Problem ID", ids, maxIDWidth)
	// Status, Terms, Score
	titleWidth := flexWidth(getTerminalWidth(), idWidth, 11, 5, 5)

	t := newTable(cmd)
	t.AppendHeader(table.Row{"Problem ID", "Title", "Status", "Terms", "Score"})
	for i, hit := range hits {
		t.AppendRow(table.Row{
			wrapString(ids[i], idWidth),
			truncate(hit.Record.Title, titleWidth),
			hit.Record.Status,
			hit.Matched,
			hit.Score,
		})
	}
	t.Render()
}

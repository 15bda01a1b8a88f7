package main

import (
	"context"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/a2zdsa/atlas/internal/atlas"
	"github.com/a2zdsa/atlas/internal/usecase"
)

func newMappingsCmd() *cobra.Command {
	var (
		status  string
		section string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "List problem mappings between the two collections",
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

			records, err := app.Atlas.Mappings(context.Background(), usecase.MappingFilter{
				Status:  atlas.MatchStatus(status),
				Section: section,
			})
			if err != nil {
				return err
			}

			if format == formatJSON {
				return outputJSON(cmd, records)
			}
			outputMappingTable(cmd, records)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status: exact, approximate, or missing")
	cmd.Flags().StringVar(&section, "section", "", "Filter by section path substring")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")

	return cmd
}

func outputMappingTable(cmd *cobra.Command, records []atlas.MatchRecord) {
	ids := make([]string, len(records))
	primaries := make([]string, len(records))
	secondaries := make([]string, len(records))
	for i, record := range records {
		ids[i] = record.ProblemID
		primaries[i] = shortPath(record.PrimaryFilePath)
		secondaries[i] = shortPath(record.SecondaryFilePath)
	}

	idWidth := columnWidth("Problem ID", ids, maxIDWidth)
	primaryWidth := columnWidth("Primary", primaries, 30)
	secondaryWidth := columnWidth("Secondary", secondaries, 30)
	titleWidth := flexWidth(getTerminalWidth(), idWidth, 11, primaryWidth, secondaryWidth)

	t := newTable(cmd)
	t.AppendHeader(table.Row{"Problem ID", "Title", "Status", "Primary", "Secondary"})
	for i, record := range records {
		t.AppendRow(table.Row{
			wrapString(ids[i], idWidth),
			truncate(record.Title, titleWidth),
			record.Status,
			wrapString(primaries[i], primaryWidth),
			wrapString(secondaries[i], secondaryWidth),
		})
	}
	t.Render()
}

package main

import (
	"context"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/a2zdsa/atlas/internal/atlas"
	"github.com/a2zdsa/atlas/internal/usecase"
)

func newListCmd() *cobra.Command {
	var (
		section     string
		status      string
		subsections bool
		format      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List topics in the index",
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

			topics, err := app.Atlas.Topics(context.Background(), usecase.TopicFilter{
				Section:            section,
				Status:             atlas.TopicStatus(status),
				IncludeSubsections: subsections,
			})
			if err != nil {
				return err
			}

			if format == formatJSON {
				return outputJSON(cmd, topics)
			}
			outputTopicTable(cmd, topics)
			return nil
		},
	}

	cmd.Flags().StringVar(&section, "section", "", "Filter by section title substring")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status: available, partial, or missing")
	cmd.Flags().BoolVar(&subsections, "subsections", false, "Include subsection rows")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")

	return cmd
}

func outputTopicTable(cmd *cobra.Command, topics []atlas.TopicIndexEntry) {
	ids := make([]string, len(topics))
	for i, topic := range topics {
		ids[i] = topic.ID
	}
	idWidth := columnWidth("ID", ids, maxIDWidth)
	// Step, Status, Problems, Files
	titleWidth := flexWidth(getTerminalWidth(), idWidth, 4, 9, 8, 9)

	t := newTable(cmd)
	t.AppendHeader(table.Row{"ID", "Step", "Title", "Status", "Problems", "Files"})
	for _, topic := range topics {
		title := topic.Title
		if topic.IsSubsection() {
			title = "  " + title
		}
		t.AppendRow(table.Row{
			wrapString(topic.ID, idWidth),
			topic.StepNumber,
			truncate(title, titleWidth),
			topic.Status,
			len(topic.RelatedProblemIDs),
			strconv.Itoa(topic.PrimaryCount) + "/" + strconv.Itoa(topic.SecondaryCount),
		})
	}
	t.Render()
}

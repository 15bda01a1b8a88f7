package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/a2zdsa/atlas/internal/atlas"
	"github.com/a2zdsa/atlas/internal/usecase"
)

type topicDetail struct {
	Topic    atlas.TopicIndexEntry `json:"topic"`
	Problems []atlas.MatchRecord   `json:"problems"`
}

func newShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <topic-id>",
		Short: "Show a topic and the problems mapped to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			app, err := openApp()
			if err != nil {
				return err
			}
			defer closeApp(app)

			ctx := context.Background()
			topic, err := app.Atlas.Topic(ctx, args[0])
			if err != nil {
				return err
			}
			records, err := app.Atlas.Mappings(ctx, usecase.MappingFilter{})
			if err != nil {
				return err
			}

			byID := make(map[string]atlas.MatchRecord, len(records))
			for _, record := range records {
				byID[record.ProblemID] = record
			}
			detail := topicDetail{Topic: *topic, Problems: []atlas.MatchRecord{}}
			for _, id := range topic.RelatedProblemIDs {
				if record, ok := byID[id]; ok {
					detail.Problems = append(detail.Problems, record)
				}
			}

			if format == formatJSON {
				return outputJSON(cmd, detail)
			}
			outputTopicDetail(cmd, detail)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")

	return cmd
}

func outputTopicDetail(cmd *cobra.Command, detail topicDetail) {
	topic := detail.Topic
	valueWidth := flexWidth(getTerminalWidth(), 10)

	t := newTable(cmd)
	t.AppendRows([]table.Row{
		{"ID", topic.ID},
		{"Title", wrapString(topic.Title, valueWidth)},
		{"Path", wrapString(topic.Path, valueWidth)},
		{"Step", topic.StepNumber},
		{"Status", topic.Status},
		{"Files", fmt.Sprintf("%d primary, %d secondary", topic.PrimaryCount, topic.SecondaryCount)},
		{"Tags", wrapString(strings.Join(topic.Tags, ", "), valueWidth)},
		{"Links", wrapString(strings.Join(topic.SourceLinks, " "), valueWidth)},
		{"Notes", wrapString(topic.Notes, valueWidth)},
	})
	if topic.ParentID != "" {
		t.AppendRow(table.Row{"Parent", topic.ParentID})
	}
	t.Render()

	if len(detail.Problems) > 0 {
		fmt.Fprintln(cmd.OutOrStdout())
		outputMappingTable(cmd, detail.Problems)
	}
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newDoneCmd() *cobra.Command {
	var (
		minutes int
		notes   string
	)

	cmd := &cobra.Command{
		Use:   "done <task-id>",
		Short: "Mark a study task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer closeApp(app)

			record, err := app.Atlas.CompleteTask(context.Background(), args[0], minutes, notes)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Completed %s (%s) in %d minutes\n", record.TaskID, record.Title, record.MinutesSpent)
			return nil
		},
	}

	cmd.Flags().IntVar(&minutes, "minutes", 0, "Minutes spent (default: the task's estimate)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	return cmd
}

func newUndoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo <task-id>",
		Short: "Mark a completed study task as not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer closeApp(app)

			if err := app.Atlas.ReopenTask(context.Background(), args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Reopened %s\n", args[0])
			return nil
		},
	}

	return cmd
}

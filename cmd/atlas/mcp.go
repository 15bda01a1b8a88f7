package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/a2zdsa/atlas/internal/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server",
		Long:  "Start the Model Context Protocol server for atlas on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer closeApp(app)

			return mcp.NewServer(app.Atlas, app.Log, version).Run(context.Background())
		},
	}

	return cmd
}

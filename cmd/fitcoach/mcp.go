// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harperreed/fitcoach/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants to read your training data through a
standardized protocol. The server communicates via stdin/stdout and is
read-only; workouts and programs are still managed through the CLI.

CONFIGURATION:

  {
    "mcpServers": {
      "fitcoach": {
        "command": "fitcoach",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  list_programs    List your personal programs
  get_program      Get a program's exercise plan
  list_history     List finished workouts
  get_records      Get personal bests per exercise
  session_status   Report the workout in progress

AVAILABLE RESOURCES:

  fitcoach://recent    Last 10 finished workouts
  fitcoach://records   Personal best map
  fitcoach://summary   Programs, record count and weekly volume`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := programSvc.Load(cmd.Context()); err != nil {
			return err
		}

		server, err := mcp.NewServer(programSvc, historySvc, cache)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

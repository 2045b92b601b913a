// Package commands implements kanbanctl, a command-line client for the
// kanban API.
package commands

import (
	"fmt"
	"kanban/client"
	"os"

	"github.com/spf13/cobra"
)

type options struct {
	server  string
	project string
	output  string
}

func (o *options) client() *client.Client {
	return client.New(o.server, client.WithProject(o.project))
}

// Execute runs kanbanctl with os.Args.
func Execute(version string) error {
	root := newRootCmd()
	root.Version = version
	return root.Execute()
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "kanbanctl",
		Short: "Manage kanban boards from the command line",
		Long: `kanbanctl talks to a running kanban server over its HTTP API.

Board commands act on the project given with --project, or on the
server's default project when it is omitted.

Examples:
  kanbanctl board
  kanbanctl tasks add "Fix login bug" --column "In Progress" --priority high
  kanbanctl tasks move card-123 --column Completed
  kanbanctl ask "move every high priority card to In Progress"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	server := os.Getenv("KANBAN_URL")
	if server == "" {
		server = client.DefaultBaseURL
	}

	root.PersistentFlags().StringVarP(&opts.server, "server", "s", server, "API base URL (env KANBAN_URL)")
	root.PersistentFlags().StringVarP(&opts.project, "project", "p", os.Getenv("KANBAN_PROJECT"), "Project id (default project when empty)")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "Output format: table, json or yaml")

	root.AddCommand(
		newProjectsCmd(opts),
		newBoardCmd(opts),
		newTasksCmd(opts),
		newColumnsCmd(opts),
		newHistoryCmd(opts),
		newUndoCmd(opts),
		newRedoCmd(opts),
		newAskCmd(opts),
		newApplyCmd(opts),
		newConfigCmd(),
	)

	return root
}

// fail prints err in red to stderr and returns it for cobra.
func fail(cmd *cobra.Command, title string, err error) error {
	red.Fprintf(cmd.ErrOrStderr(), "%s\n", title)
	fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
	return fmt.Errorf("%s: %w", title, err)
}

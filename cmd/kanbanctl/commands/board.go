package commands

import (
	"encoding/json"
	"fmt"
	"kanban/router"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newBoardCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Show the board",
		Long: `Show every column and card of the board.

Use --output yaml to export the board snapshot.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.client().Board(cmd.Context())
			if err != nil {
				return fail(cmd, "Failed to load board", err)
			}
			if done, err := render(cmd.OutOrStdout(), opts.output, b); done {
				return err
			}
			printBoard(cmd.OutOrStdout(), b)
			return nil
		},
	}
}

func newHistoryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the undo and redo stacks",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := opts.client().History(cmd.Context())
			if err != nil {
				return fail(cmd, "Failed to load history", err)
			}
			if done, err := render(cmd.OutOrStdout(), opts.output, h); done {
				return err
			}

			out := cmd.OutOrStdout()
			for i, e := range h.Past {
				marker := " "
				if i == len(h.Past)-1 {
					marker = green.Sprint(">")
				}
				fmt.Fprintf(out, "%s %s\n", marker, e.Label)
			}
			for _, e := range h.Future {
				fmt.Fprintf(out, "  %s\n", faint.Sprint(e.Label))
			}
			return nil
		},
	}
}

func newUndoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Undo the last change",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.client().Undo(cmd.Context())
			if err != nil {
				return fail(cmd, "Failed to undo", err)
			}
			if !res.Applied {
				warning(cmd.OutOrStdout(), "Nothing to undo")
				return nil
			}
			success(cmd.OutOrStdout(), "Undone, now at %q", res.History.LastAction)
			return nil
		},
	}
}

func newRedoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "redo",
		Short: "Redo the last undone change",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.client().Redo(cmd.Context())
			if err != nil {
				return fail(cmd, "Failed to redo", err)
			}
			if !res.Applied {
				warning(cmd.OutOrStdout(), "Nothing to redo")
				return nil
			}
			success(cmd.OutOrStdout(), "Redone %q", res.History.LastAction)
			return nil
		},
	}
}

func newAskCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ask MESSAGE...",
		Short: "Change the board with a natural-language instruction",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.client().Command(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return fail(cmd, "Command failed", err)
			}
			if done, err := render(cmd.OutOrStdout(), opts.output, res); done {
				return err
			}

			out := cmd.OutOrStdout()
			if res.Message != "" {
				fmt.Fprintln(out, res.Message)
			}
			for _, r := range res.Results {
				if r.Success {
					success(out, "%s %s", r.Type, r.Message)
				} else {
					warning(out, "%s: %s", r.Type, r.Error)
				}
			}
			return nil
		},
	}
}

func newApplyCmd(opts *options) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "apply -f FILE",
		Short: "Apply structured intents from a JSON or YAML file",
		Long: `Apply a list of intents, in order, to the board.

The file holds a list of {type, data} objects, for example:

  - type: create_column
    data: {title: Review}
  - type: create_card
    data: {title: Audit logs, columnName: Review, priority: high}`,
		RunE: func(cmd *cobra.Command, args []string) error {
			intents, err := readIntents(file)
			if err != nil {
				return fail(cmd, "Failed to read intents", err)
			}

			results, err := opts.client().ApplyIntents(cmd.Context(), intents)
			if err != nil {
				return fail(cmd, "Failed to apply intents", err)
			}
			if done, err := render(cmd.OutOrStdout(), opts.output, results); done {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range results {
				if r.Success {
					success(out, "%s %s", r.Type, r.Message)
				} else {
					warning(out, "%s: %s", r.Type, r.Error)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Intents file (JSON or YAML)")
	cmd.MarkFlagRequired("file")
	return cmd
}

// readIntents accepts JSON or YAML. YAML is decoded generically and passed
// through JSON so the intent data has the same types either way.
func readIntents(path string) ([]router.Intent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	raw, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var intents []router.Intent
	if err := json.Unmarshal(raw, &intents); err != nil {
		return nil, fmt.Errorf("%s must hold a list of intents: %w", path, err)
	}
	return intents, nil
}

package commands

import (
	"kanban/models"
	"strconv"

	"github.com/spf13/cobra"
)

func newColumnsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "columns",
		Aliases: []string{"column", "cols"},
		Short:   "List and manage columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			cols, err := opts.client().ListColumns(cmd.Context())
			if err != nil {
				return fail(cmd, "Failed to list columns", err)
			}
			if done, err := render(cmd.OutOrStdout(), opts.output, cols); done {
				return err
			}
			printColumns(cmd.OutOrStdout(), cols)
			return nil
		},
	}

	var color string
	add := &cobra.Command{
		Use:   "add TITLE",
		Short: "Append a column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := opts.client().CreateColumn(cmd.Context(), models.CreateColumnRequest{Title: args[0], Color: color})
			if err != nil {
				return fail(cmd, "Failed to create column", err)
			}
			success(cmd.OutOrStdout(), "Created column %q (%s)", col.Title, col.ID)
			return nil
		},
	}
	add.Flags().StringVar(&color, "color", "", "Column color")

	rename := &cobra.Command{
		Use:   "rename ID TITLE",
		Short: "Rename a column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := opts.client().UpdateColumn(cmd.Context(), args[0], models.UpdateColumnRequest{Title: &args[1]})
			if err != nil {
				return fail(cmd, "Failed to rename column", err)
			}
			success(cmd.OutOrStdout(), "Renamed column to %q", col.Title)
			return nil
		},
	}

	move := &cobra.Command{
		Use:   "move ID INDEX",
		Short: "Move a column to a new position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fail(cmd, "Invalid index", err)
			}
			cols, err := opts.client().MoveColumn(cmd.Context(), args[0], index)
			if err != nil {
				return fail(cmd, "Failed to move column", err)
			}
			printColumns(cmd.OutOrStdout(), cols)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a column and every card in it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.client().DeleteColumn(cmd.Context(), args[0]); err != nil {
				return fail(cmd, "Failed to delete column", err)
			}
			success(cmd.OutOrStdout(), "Deleted column %s", args[0])
			return nil
		},
	}

	cmd.AddCommand(add, rename, move, remove)
	return cmd
}

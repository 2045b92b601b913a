package commands

import (
	"fmt"
	"kanban/models"

	"github.com/spf13/cobra"
)

func newTasksCmd(opts *options) *cobra.Command {
	var params models.TaskQueryParams

	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task", "cards"},
		Short:   "List and manage tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := opts.client().ListTasks(cmd.Context(), params)
			if err != nil {
				return fail(cmd, "Failed to list tasks", err)
			}
			if done, err := render(cmd.OutOrStdout(), opts.output, resp); done {
				return err
			}

			out := cmd.OutOrStdout()
			for _, card := range resp.Cards {
				printCard(out, card)
			}
			fmt.Fprintf(out, "%s\n", faint.Sprintf("%d of %d tasks", len(resp.Cards), resp.Total))
			return nil
		},
	}
	cmd.Flags().StringVar(&params.Search, "search", "", "Match title, description or tags")
	cmd.Flags().StringVar(&params.Priority, "priority", "", "Only this priority")
	cmd.Flags().StringVar(&params.ColumnID, "column-id", "", "Only this column")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "Page size (0 for all)")
	cmd.Flags().IntVar(&params.Offset, "offset", 0, "Page offset")

	cmd.AddCommand(newTaskAddCmd(opts), newTaskMoveCmd(opts), newTaskEditCmd(opts), newTaskDeleteCmd(opts))
	return cmd
}

func newTaskAddCmd(opts *options) *cobra.Command {
	var req models.CreateTaskRequest

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Title = args[0]
			card, err := opts.client().CreateTask(cmd.Context(), req)
			if err != nil {
				return fail(cmd, "Failed to create task", err)
			}
			success(cmd.OutOrStdout(), "Created %q (%s)", card.Title, card.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&req.Description, "description", "d", "", "Description")
	cmd.Flags().StringVarP(&req.ColumnName, "column", "c", "", "Column name (first column when it matches nothing)")
	cmd.Flags().StringVar(&req.ColumnID, "column-id", "", "Column id")
	cmd.Flags().StringVar(&req.Priority, "priority", "", "low, medium, high or critical")
	cmd.Flags().StringSliceVarP(&req.Tags, "tag", "t", nil, "Tag (repeatable)")
	return cmd
}

func newTaskMoveCmd(opts *options) *cobra.Command {
	var (
		req   models.MoveTaskRequest
		index int
	)

	cmd := &cobra.Command{
		Use:   "move ID",
		Short: "Move a task to another column or position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("index") {
				req.Index = &index
			}
			card, err := opts.client().MoveTask(cmd.Context(), args[0], req)
			if err != nil {
				return fail(cmd, "Failed to move task", err)
			}
			success(cmd.OutOrStdout(), "Moved %q to position %d", card.Title, card.Position)
			return nil
		},
	}
	cmd.Flags().StringVarP(&req.ColumnName, "column", "c", "", "Target column name")
	cmd.Flags().StringVar(&req.ColumnID, "column-id", "", "Target column id")
	cmd.Flags().IntVarP(&index, "index", "i", 0, "Position in the target column (end when omitted)")
	return cmd
}

func newTaskEditCmd(opts *options) *cobra.Command {
	var (
		title, description, priority, columnID string
		tags                                   []string
	)

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req models.UpdateTaskRequest
			flags := cmd.Flags()
			if flags.Changed("title") {
				req.Title = &title
			}
			if flags.Changed("description") {
				req.Description = &description
			}
			if flags.Changed("priority") {
				req.Priority = &priority
			}
			if flags.Changed("column-id") {
				req.ColumnID = &columnID
			}
			if flags.Changed("tag") {
				req.Tags = &tags
			}

			card, err := opts.client().UpdateTask(cmd.Context(), args[0], req)
			if err != nil {
				return fail(cmd, "Failed to update task", err)
			}
			success(cmd.OutOrStdout(), "Updated %q", card.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority")
	cmd.Flags().StringVar(&columnID, "column-id", "", "Move to the end of this column")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Replace tags (repeatable)")
	return cmd
}

func newTaskDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.client().DeleteTask(cmd.Context(), args[0]); err != nil {
				return fail(cmd, "Failed to delete task", err)
			}
			success(cmd.OutOrStdout(), "Deleted task %s", args[0])
			return nil
		},
	}
}

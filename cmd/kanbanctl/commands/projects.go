package commands

import (
	"fmt"
	"kanban/models"

	"github.com/spf13/cobra"
)

func newProjectsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "List and manage projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := opts.client().ListProjects(cmd.Context())
			if err != nil {
				return fail(cmd, "Failed to list projects", err)
			}
			if done, err := render(cmd.OutOrStdout(), opts.output, index); done {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range index.Projects {
				marker := " "
				if index.DefaultProjectID != nil && *index.DefaultProjectID == p.ID {
					marker = green.Sprint("*")
				}
				fmt.Fprintf(out, "%s %-30s %s\n", marker, p.Name, faint.Sprint(p.ID))
			}
			return nil
		},
	}

	var description string
	create := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.client().CreateProject(cmd.Context(), models.CreateProjectRequest{Name: args[0], Description: description})
			if err != nil {
				return fail(cmd, "Failed to create project", err)
			}
			success(cmd.OutOrStdout(), "Created project %q (%s)", p.Name, p.ID)
			return nil
		},
	}
	create.Flags().StringVarP(&description, "description", "d", "", "Project description")

	rename := &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.client().UpdateProject(cmd.Context(), args[0], models.UpdateProjectRequest{Name: &args[1]})
			if err != nil {
				return fail(cmd, "Failed to rename project", err)
			}
			success(cmd.OutOrStdout(), "Renamed project to %q", p.Name)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a project and its board",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.client().DeleteProject(cmd.Context(), args[0]); err != nil {
				return fail(cmd, "Failed to delete project", err)
			}
			success(cmd.OutOrStdout(), "Deleted project %s", args[0])
			return nil
		},
	}

	cmd.AddCommand(create, rename, remove)
	return cmd
}

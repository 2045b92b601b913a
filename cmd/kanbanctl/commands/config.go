package commands

import (
	"bufio"
	"errors"
	"kanban/config"
	"strings"

	"github.com/spf13/cobra"
)

// Replaced in tests.
var (
	setAIKey    = config.SetAIKey
	deleteAIKey = config.DeleteAIKey
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage local credentials",
	}

	set := &cobra.Command{
		Use:   "set-ai-key [KEY]",
		Short: "Store the AI API key in the system keyring",
		Long: `Store the AI API key in the system keyring. The server reads it
when neither AI_API_KEY nor GROQ_API_KEY is set.

The key is read from stdin when not given as an argument.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var key string
			if len(args) == 1 {
				key = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fail(cmd, "Failed to read key", err)
				}
				key = line
			}

			key = strings.TrimSpace(key)
			if key == "" {
				return fail(cmd, "Failed to store key", errors.New("key is empty"))
			}
			if err := setAIKey(key); err != nil {
				return fail(cmd, "Failed to store key", err)
			}
			success(cmd.OutOrStdout(), "AI key stored in keyring")
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "delete-ai-key",
		Short: "Remove the AI API key from the system keyring",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := deleteAIKey(); err != nil {
				return fail(cmd, "Failed to delete key", err)
			}
			success(cmd.OutOrStdout(), "AI key removed from keyring")
			return nil
		},
	}

	cmd.AddCommand(set, remove)
	return cmd
}

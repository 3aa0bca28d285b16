package cmd

import (
	"github.com/spf13/cobra"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func init() {
	rootCmd.AddCommand(newSessionCmd())
}

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage conversation sessions",
	}
	cmd.AddCommand(
		newSessionNewCmd(),
		newSessionListCmd(),
		newSessionGetCmd(),
		newSessionDeleteCmd(),
		newSessionAddMessageCmd(),
		newSessionCommitCmd(),
	)
	return cmd
}

func newSessionNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Create a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			result, err := cli.client().NewSession(cmd.Context())
			if err != nil {
				return err
			}
			return cli.emit(cmd.OutOrStdout(), result)
		},
	}
}

func newSessionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			result, err := cli.client().ListSessions(cmd.Context())
			if err != nil {
				return err
			}
			return cli.emit(cmd.OutOrStdout(), result)
		},
	}
}

func newSessionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <session-id>",
		Short: "Show one session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			result, err := cli.client().GetSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return cli.emit(cmd.OutOrStdout(), result)
		},
	}
}

func newSessionDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			result, err := cli.client().DeleteSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			// Deletes answer with an empty body; echo the id so the
			// output still says what happened.
			if result == nil {
				echo := orderedmap.New[string, any]()
				echo.Set("session_id", args[0])
				result = echo
			}
			return cli.emit(cmd.OutOrStdout(), result)
		},
	}
}

func newSessionAddMessageCmd() *cobra.Command {
	var role, content string

	cmd := &cobra.Command{
		Use:   "add-message <session-id>",
		Short: "Append a message to a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			result, err := cli.client().AddMessage(cmd.Context(), args[0], role, content)
			if err != nil {
				return err
			}
			return cli.emit(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&role, "role", "user", "message role")
	cmd.Flags().StringVar(&content, "content", "", "message content")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newSessionCommitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commit <session-id>",
		Short: "Archive a session and extract memories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			result, err := cli.client().CommitSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return cli.emit(cmd.OutOrStdout(), result)
		},
	}
}

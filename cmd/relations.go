package cmd

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newRelationsCmd())
	rootCmd.AddCommand(newLinkCmd())
	rootCmd.AddCommand(newUnlinkCmd())
}

func newRelationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "relations <uri>",
		Short: "List relations of a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			result, err := cli.client().Relations(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return cli.emit(cmd.OutOrStdout(), result)
		},
	}
}

func newLinkCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "link <from-uri> <to-uri>...",
		Short: "Link a resource to one or more targets",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			result, err := cli.client().Link(cmd.Context(), args[0], args[1:], reason)
			if err != nil {
				return err
			}
			return cli.emit(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "why the resources are related")
	return cmd
}

func newUnlinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <from-uri> <to-uri>",
		Short: "Remove a relation link",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			result, err := cli.client().Unlink(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return cli.emit(cmd.OutOrStdout(), result)
		},
	}
}

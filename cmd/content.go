package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newContentCmd("read", "Read full file content (L2)",
		func(cli *cliContext, ctx context.Context, uri string) (any, error) {
			return cli.client().Read(ctx, uri)
		}))
	rootCmd.AddCommand(newContentCmd("abstract", "Read the abstract (L0)",
		func(cli *cliContext, ctx context.Context, uri string) (any, error) {
			return cli.client().Abstract(ctx, uri)
		}))
	rootCmd.AddCommand(newContentCmd("overview", "Read the overview (L1)",
		func(cli *cliContext, ctx context.Context, uri string) (any, error) {
			return cli.client().Overview(ctx, uri)
		}))
}

// newContentCmd builds one of the three content-level commands; they differ
// only in the endpoint they hit.
func newContentCmd(name, short string, fetch func(*cliContext, context.Context, string) (any, error)) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <uri>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			result, err := fetch(cli, cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return cli.emit(cmd.OutOrStdout(), result)
		},
	}
}

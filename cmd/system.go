package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newSystemCmd())
	rootCmd.AddCommand(newObserverCmd())
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show overall system status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			result, err := cli.client().ObserverSystem(cmd.Context())
			if err != nil {
				return err
			}
			return cli.emit(cmd.OutOrStdout(), result)
		},
	}
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Quick server health check",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			result, err := cli.client().Health(cmd.Context())
			if err != nil {
				return err
			}
			return cli.emit(cmd.OutOrStdout(), result)
		},
	}
}

func newSystemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "system",
		Short: "System operations",
	}
	cmd.AddCommand(newSystemWaitCmd())
	return cmd
}

func newSystemWaitCmd() *cobra.Command {
	var timeout float64

	cmd := &cobra.Command{
		Use:   "wait",
		Short: "Block until queued processing completes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			var t *float64
			if cmd.Flags().Changed("timeout") {
				t = &timeout
			}
			result, err := cli.client().Wait(cmd.Context(), t)
			if err != nil {
				return err
			}
			return cli.emit(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().Float64Var(&timeout, "timeout", 0, "maximum seconds to wait")
	return cmd
}

func newObserverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "observer",
		Short: "Inspect server subsystems",
	}
	cmd.AddCommand(
		newObserverSubCmd("queue", "Show processing queue status",
			func(cli *cliContext, ctx context.Context) (any, error) {
				return cli.client().ObserverQueue(ctx)
			}),
		newObserverSubCmd("vikingdb", "Show VikingDB status",
			func(cli *cliContext, ctx context.Context) (any, error) {
				return cli.client().ObserverVikingDB(ctx)
			}),
		newObserverSubCmd("vlm", "Show VLM status",
			func(cli *cliContext, ctx context.Context) (any, error) {
				return cli.client().ObserverVLM(ctx)
			}),
		newObserverSubCmd("system", "Show overall system status",
			func(cli *cliContext, ctx context.Context) (any, error) {
				return cli.client().ObserverSystem(ctx)
			}),
	)
	return cmd
}

func newObserverSubCmd(name, short string, fetch func(*cliContext, context.Context) (any, error)) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			result, err := fetch(cli, cmd.Context())
			if err != nil {
				return err
			}
			return cli.emit(cmd.OutOrStdout(), result)
		},
	}
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openviking/ovx/internal/client"
)

func init() {
	rootCmd.AddCommand(newFindCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newGrepCmd())
	rootCmd.AddCommand(newGlobCmd())
}

func newFindCmd() *cobra.Command {
	opts := client.SearchOptions{}
	var threshold float64

	cmd := &cobra.Command{
		Use:   "find <query>",
		Short: "Semantic retrieval for a query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("threshold") {
				opts.Threshold = &threshold
			}
			result, err := cli.client().Find(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			return cli.emit(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&opts.URI, "uri", "u", "viking://", "scope root uri")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 10, "maximum results")
	cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0, "minimum score threshold")
	return cmd
}

func newSearchCmd() *cobra.Command {
	opts := client.SearchOptions{}
	var threshold float64

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Context-aware retrieval for a query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("threshold") {
				opts.Threshold = &threshold
			}
			result, err := cli.client().Search(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			return cli.emit(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&opts.URI, "uri", "u", "viking://", "scope root uri")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 10, "maximum results")
	cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0, "minimum score threshold")
	cmd.Flags().StringVar(&opts.SessionID, "session-id", "", "session to search within")
	return cmd
}

func newGrepCmd() *cobra.Command {
	var ignoreCase bool

	cmd := &cobra.Command{
		Use:   "grep <uri> <pattern>",
		Short: "Search content by pattern",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			result, err := cli.client().Grep(cmd.Context(), args[0], args[1], ignoreCase)
			if err != nil {
				return err
			}
			return cli.emit(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().BoolVarP(&ignoreCase, "ignore-case", "i", false, "case-insensitive match")
	return cmd
}

func newGlobCmd() *cobra.Command {
	var uri string

	cmd := &cobra.Command{
		Use:   "glob <pattern>",
		Short: "Match files by glob pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			result, err := cli.client().Glob(cmd.Context(), args[0], uri)
			if err != nil {
				return err
			}
			return cli.emit(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&uri, "uri", "u", "viking://", "scope root uri")
	return cmd
}

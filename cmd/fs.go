package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/openviking/ovx/internal/client"
)

func init() {
	rootCmd.AddCommand(newLsCmd())
	rootCmd.AddCommand(newTreeCmd())
	rootCmd.AddCommand(newStatCmd())
	rootCmd.AddCommand(newMkdirCmd())
	rootCmd.AddCommand(newRmCmd())
	rootCmd.AddCommand(newMvCmd())
}

func newLsCmd() *cobra.Command {
	opts := client.LsOptions{}

	cmd := &cobra.Command{
		Use:   "ls [uri]",
		Short: "List directory contents",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			uri := "viking://"
			if len(args) == 1 {
				uri = args[0]
			}
			result, err := cli.client().Ls(cmd.Context(), uri, opts)
			if err != nil {
				return err
			}
			if opts.Simple {
				return printSimpleURIs(cmd, result)
			}
			return cli.emit(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().BoolVar(&opts.Simple, "simple", false, "print one uri per line")
	cmd.Flags().BoolVarP(&opts.Recursive, "recursive", "r", false, "list recursively")
	cmd.Flags().BoolVarP(&opts.ShowAllHidden, "all", "a", false, "include hidden entries")
	cmd.Flags().IntVar(&opts.AbsLimit, "abs-limit", 256, "abstract truncation length, 0 for full")
	cmd.Flags().IntVar(&opts.NodeLimit, "node-limit", 1000, "maximum entries returned")
	return cmd
}

// printSimpleURIs writes just the uri of each entry, one per line. The server
// may return the entries directly or wrapped in an object field.
func printSimpleURIs(cmd *cobra.Command, result any) error {
	out := cmd.OutOrStdout()
	for _, uri := range collectURIs(result) {
		fmt.Fprintln(out, uri)
	}
	return nil
}

// collectURIs extracts uri strings from a listing response, whether it is a
// bare array of strings, an array of entry objects, or an object whose array
// fields hold the entries.
func collectURIs(result any) []string {
	var uris []string
	switch t := result.(type) {
	case []any:
		for _, item := range t {
			switch entry := item.(type) {
			case string:
				uris = append(uris, entry)
			case *orderedmap.OrderedMap[string, any]:
				if v, ok := entry.Get("uri"); ok {
					if s, ok := v.(string); ok {
						uris = append(uris, s)
					}
				}
			}
		}
	case *orderedmap.OrderedMap[string, any]:
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			if items, ok := pair.Value.([]any); ok {
				uris = append(uris, collectURIs(items)...)
			}
		}
	}
	return uris
}

func newTreeCmd() *cobra.Command {
	opts := client.TreeOptions{}

	cmd := &cobra.Command{
		Use:   "tree <uri>",
		Short: "Show the directory tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			result, err := cli.client().Tree(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			return cli.emit(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().BoolVarP(&opts.ShowAllHidden, "all", "a", false, "include hidden entries")
	cmd.Flags().IntVar(&opts.AbsLimit, "abs-limit", 128, "abstract truncation length, 0 for full")
	cmd.Flags().IntVar(&opts.NodeLimit, "node-limit", 1000, "maximum nodes returned")
	return cmd
}

func newStatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stat <uri>",
		Short: "Show resource metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			result, err := cli.client().Stat(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return cli.emit(cmd.OutOrStdout(), result)
		},
	}
}

func newMkdirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir <uri>",
		Short: "Create a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			result, err := cli.client().Mkdir(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return cli.emit(cmd.OutOrStdout(), result)
		},
	}
}

func newRmCmd() *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:     "rm <uri>",
		Aliases: []string{"del", "delete"},
		Short:   "Remove a resource",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			result, err := cli.client().Rm(cmd.Context(), args[0], recursive)
			if err != nil {
				return err
			}
			return cli.emit(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "remove directories recursively")
	return cmd
}

func newMvCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "mv <from-uri> <to-uri>",
		Aliases: []string{"rename"},
		Short:   "Move or rename a resource",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			result, err := cli.client().Mv(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return cli.emit(cmd.OutOrStdout(), result)
		},
	}
}

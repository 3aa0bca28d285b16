package cmd

import (
	"github.com/spf13/cobra"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/openviking/ovx/pkg/version"
)

func init() {
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show client version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			info := orderedmap.New[string, any]()
			info.Set("version", version.BuildVersion)
			info.Set("commit", version.Commit)
			info.Set("build_time", version.BuildTime)
			return cli.emit(cmd.OutOrStdout(), info)
		},
	}
}

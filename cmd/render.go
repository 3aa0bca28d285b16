package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/openviking/ovx/pkg/loader"
)

func init() {
	rootCmd.AddCommand(newRenderCmd())
}

// newRenderCmd renders a local document (JSON, YAML, TOML, or NDJSON) through
// the same pipeline API responses go through. Useful for previewing how data
// will display without a server.
func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render [file]",
		Short: "Render a local document; reads stdin when no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}

			var data any
			if len(args) == 1 && args[0] != "-" {
				data, err = loader.LoadFile(args[0])
			} else {
				var raw []byte
				raw, err = io.ReadAll(cmd.InOrStdin())
				if err == nil {
					data, err = loader.LoadRoot(string(raw))
				}
			}
			if err != nil {
				return err
			}
			return cli.emit(cmd.OutOrStdout(), data)
		},
	}
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func init() {
	rootCmd.AddCommand(newConfigCmd())
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect client configuration",
	}
	cmd.AddCommand(newConfigShowCmd(), newConfigValidateCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			view := orderedmap.New[string, any]()
			view.Set("url", cli.cfg.URL)
			view.Set("api_key", maskKey(cli.cfg.APIKey))
			view.Set("timeout_seconds", cli.cfg.TimeoutSeconds)
			view.Set("source", cli.cfg.Source)
			return cli.emit(cmd.OutOrStdout(), view)
		},
	}
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			view := orderedmap.New[string, any]()
			view.Set("valid", true)
			view.Set("url", cli.cfg.URL)
			view.Set("source", cli.cfg.Source)
			return cli.emit(cmd.OutOrStdout(), view)
		},
	}
}

// maskKey hides all but a short prefix of the API key.
func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return "****"
	}
	return fmt.Sprintf("%s****", key[:4])
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openviking/ovx/internal/client"
)

func init() {
	rootCmd.AddCommand(newAddResourceCmd())
	rootCmd.AddCommand(newAddSkillCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())
}

func newAddResourceCmd() *cobra.Command {
	opts := client.AddResourceOptions{}
	var timeout float64

	cmd := &cobra.Command{
		Use:   "add-resource <path>",
		Short: "Add a local path or URL as a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("timeout") {
				opts.Timeout = &timeout
			}
			result, err := cli.client().AddResource(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			return cli.emit(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&opts.Target, "to", "", "target uri")
	cmd.Flags().StringVar(&opts.Reason, "reason", "", "reason for the import")
	cmd.Flags().StringVar(&opts.Instruction, "instruction", "", "additional processing instruction")
	cmd.Flags().BoolVar(&opts.Wait, "wait", false, "wait until processing completes")
	cmd.Flags().Float64Var(&timeout, "timeout", 0, "wait timeout in seconds")
	return cmd
}

func newAddSkillCmd() *cobra.Command {
	var wait bool
	var timeout float64

	cmd := &cobra.Command{
		Use:   "add-skill <data>",
		Short: "Add a skill from a directory, SKILL.md, or raw content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			var t *float64
			if cmd.Flags().Changed("timeout") {
				t = &timeout
			}
			result, err := cli.client().AddSkill(cmd.Context(), args[0], wait, t)
			if err != nil {
				return err
			}
			return cli.emit(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "wait until processing completes")
	cmd.Flags().Float64Var(&timeout, "timeout", 0, "wait timeout in seconds")
	return cmd
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <uri> <to>",
		Short: "Export context as an .ovpack file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			result, err := cli.client().ExportPack(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return cli.emit(cmd.OutOrStdout(), result)
		},
	}
}

func newImportCmd() *cobra.Command {
	var force, noVectorize bool

	cmd := &cobra.Command{
		Use:   "import <file> <target-uri>",
		Short: "Import an .ovpack file under a target URI",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			result, err := cli.client().ImportPack(cmd.Context(), args[0], args[1], force, !noVectorize)
			if err != nil {
				return err
			}
			return cli.emit(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite on conflicts")
	cmd.Flags().BoolVar(&noVectorize, "no-vectorize", false, "skip vectorization after import")
	return cmd
}

package main

import (
	"fmt"

	"github.com/aretw0/fxforge/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <project>",
	Short: "Check every layer of a project for consistency",
	Long: `Checks that each layer has exactly one default state, that every other state
can be entered and can return to the default, and that conditions reference
declared parameters of the right kind.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd, cli.WorkspaceOptions{})
		if err != nil {
			return err
		}
		defer env.Close()

		if err := cli.ValidateProject(cmd.Context(), env, args[0], cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("validation failed for %q", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Project is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

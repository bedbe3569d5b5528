package main

import (
	"github.com/aretw0/fxforge/internal/cli"
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply <manifest>",
	Short: "Apply a manifest's jobs to a project",
	Long: `Loads a YAML (or .json) manifest, runs its jobs in order against the stored
project (creating it if needed) and saves the result. Work done before a
failing job is kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd, cli.WorkspaceOptions{})
		if err != nil {
			return err
		}
		defer env.Close()

		project, _ := cmd.Flags().GetString("project")
		return cli.RunApply(cmd.Context(), env, cli.ApplyOptions{
			ManifestPath: args[0],
			Project:      project,
		}, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().StringP("project", "p", "", "Project ID (overrides the manifest)")
}

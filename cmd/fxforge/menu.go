package main

import (
	"fmt"

	"github.com/aretw0/fxforge/internal/cli"
	"github.com/aretw0/fxforge/internal/presentation/graph"
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu <project>",
	Short: "Print the project's menu tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd, cli.WorkspaceOptions{})
		if err != nil {
			return err
		}
		defer env.Close()

		project, err := env.Workspace.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "tree":
			fmt.Fprint(cmd.OutOrStdout(), graph.MenuTree(project.Menu))
		case "mermaid":
			fmt.Fprint(cmd.OutOrStdout(), graph.MenuMermaid(project.Menu))
		default:
			return fmt.Errorf("unknown format %q (want tree or mermaid)", format)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
	menuCmd.Flags().StringP("format", "f", "tree", "Output format: tree or mermaid")
}

package main

import (
	"fmt"

	"github.com/aretw0/fxforge/internal/cli"
	"github.com/aretw0/fxforge/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <project>",
	Short: "Export layer state machines as Mermaid diagrams",
	Long:  `Outputs a Mermaid stateDiagram for the given layer, or for every layer of the project.`,
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

		out := cmd.OutOrStdout()
		name, _ := cmd.Flags().GetString("layer")
		if name != "" {
			layer := project.Controller.Layer(name)
			if layer == nil {
				return fmt.Errorf("layer %q not found in project %q", name, args[0])
			}
			fmt.Fprint(out, graph.LayerMermaid(layer))
			return nil
		}

		for i, layer := range project.Controller.Layers {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "%%%% %s\n", layer.Name)
			fmt.Fprint(out, graph.LayerMermaid(layer))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("layer", "l", "", "Only this layer")
}

package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/fxforge"
	"github.com/aretw0/fxforge/internal/cli"
	"github.com/aretw0/fxforge/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of fxforge",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if cli.IsTerminal(out) {
			tui.PrintBanner(out, strings.TrimSpace(fxforge.Version))
			return
		}
		fmt.Fprintf(out, "fxforge version %s\n", strings.TrimSpace(fxforge.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	`   __       __                      `,
	`  / _|_  __/ _| ___  _ __ __ _  ___ `,
	` | |_\ \/ / |_ / _ \| '__/ _' |/ _ \`,
	` |  _|>  <|  _| (_) | | | (_| |  __/`,
	` |_| /_/\_\_|  \___/|_|  \__, |\___|`,
	`                         |___/      `,
}

var bannerColors = []string{"#f59e0b", "#f97316", "#ef4444", "#ec4899", "#d946ef", "#a855f7"}

// PrintBanner writes the fxforge banner and version to w, colored when w is a
// terminal that supports it.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, out.String(line).Foreground(p.Color(bannerColors[i])))
	}
	if version != "" {
		fmt.Fprintln(w, out.String("  v"+version).Faint())
	}
	fmt.Fprintln(w)
}

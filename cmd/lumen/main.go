package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lumen/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "lumen",
	Short: "Lumen declaration-lowering toolchain",
	Long:  `Lumen lowers resolved source declarations into output units`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(lowerCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"strhash/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "strhash",
	Short: "Compile-time string literal hashing preprocessor",
	Long: `strhash scans source files for str_hash_default(...) and
str_hash_fnv1a(...) invocations, hashes the quoted string literal at
build time, and rewrites each invocation into the numeric constant.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show per file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a TTY.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color tri-state against the stream's TTY status.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

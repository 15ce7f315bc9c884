package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rlint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "rlint",
	Short: "Linter for R scripts and R Markdown",
	Long:  `rlint finds unreachable code, style slips, and cross-file conflicts in R projects, and can rewrite the safe ones in place`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("config", "", "path to rlint.toml (default: walk up from the working directory)")
	rootCmd.PersistentFlags().Int("jobs", 0, "parallel workers (0 = config value, then one per CPU)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "cap the number of reported findings (0 = unlimited)")
	rootCmd.PersistentFlags().Bool("timings", false, "show per-phase timing information")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to the given path")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile to the given path")
	rootCmd.PersistentFlags().String("traceprofile", "", "write a runtime trace to the given path")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
	os.Exit(exitCode)
}

// exitCode is set by commands that finish cleanly but found problems, so
// deferred cleanups still run before the process exits.
var exitCode int

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rlint/internal/driver"
)

var fixCmd = &cobra.Command{
	Use:          "fix [flags] [path ...]",
	Short:        "Apply safe fixes and rewrite files in place",
	Long:         "Lint the given files and directories, apply every safe fix until the findings stop changing, and write the results back. Remaining findings are reported the same way check reports them.",
	SilenceUsage: true,
	RunE:         runFix,
}

func init() {
	fixCmd.Flags().String("format", "", "output format (pretty|json); overrides the manifest")
	fixCmd.Flags().String("path-mode", "", "path rendering (auto|absolute|relative|basename); overrides the manifest")
	fixCmd.Flags().Bool("dry-run", false, "report what would change without writing files")
}

func runFix(cmd *cobra.Command, args []string) error {
	cfg, err := resolveOutputFlags(cmd)
	if err != nil {
		return err
	}
	if err := setupColor(cmd); err != nil {
		return err
	}
	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return err
	}

	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}
	results, err := driver.Run(cmd.Context(), paths, driver.Options{
		Config: cfg,
		Fix:    true,
		DryRun: dryRun,
		Jobs:   jobs,
	})
	if err != nil {
		return err
	}

	verb := "fixed"
	if dryRun {
		verb = "would fix"
	}
	fixed := 0
	for _, r := range results {
		if r.Fixed {
			fixed++
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d pass(es))\n", verb, r.Path, r.Iterations)
			}
		}
	}
	if fixed > 0 && !dryRun && !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "rewrote %d file(s)\n", fixed)
	}

	if err := renderResults(cmd, cfg, results); err != nil {
		return err
	}
	if driver.HasErrors(results) {
		exitCode = 1
	}
	return nil
}

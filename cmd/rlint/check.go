package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rlint/internal/config"
	"rlint/internal/diag"
	"rlint/internal/diagfmt"
	"rlint/internal/driver"
	"rlint/internal/observ"
)

var checkCmd = &cobra.Command{
	Use:          "check [flags] [path ...]",
	Short:        "Lint R files and report findings",
	Long:         "Lint the given files and directories (the working directory when none are given) and report every finding without touching the files.",
	SilenceUsage: true,
	RunE:         runCheck,
}

func init() {
	checkCmd.Flags().String("format", "", "output format (pretty|json); overrides the manifest")
	checkCmd.Flags().String("path-mode", "", "path rendering (auto|absolute|relative|basename); overrides the manifest")
	checkCmd.Flags().Bool("no-cache", false, "bypass the result cache")
	checkCmd.Flags().Bool("no-warnings", false, "report errors only")
	checkCmd.Flags().String("ui", "auto", "interactive progress (auto|on|off)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := resolveOutputFlags(cmd)
	if err != nil {
		return err
	}
	if err := setupColor(cmd); err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}
	opts := driver.Options{Config: cfg, Jobs: jobs, NoCache: noCache}

	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	timer := observ.NewTimer()
	lintPhase := timer.Begin("lint")

	var results []driver.FileResult
	if cfg.Output.Format == "pretty" && shouldUseTUI(mode) {
		results, err = runLintWithUI(cmd.Context(), "rlint check", paths, opts)
	} else {
		results, err = driver.Run(cmd.Context(), paths, opts)
	}
	timer.End(lintPhase, fmt.Sprintf("%d file(s)", len(results)))
	if err != nil {
		return err
	}

	if noWarnings, _ := cmd.Flags().GetBool("no-warnings"); noWarnings { //nolint:errcheck // flag is registered
		results = errorsOnly(results)
	}

	reportPhase := timer.Begin("report")
	renderErr := renderResults(cmd, cfg, results)
	timer.End(reportPhase, "")
	if renderErr != nil {
		return renderErr
	}

	if showTimings, _ := cmd.Root().PersistentFlags().GetBool("timings"); showTimings { //nolint:errcheck // flag is registered
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	if driver.HasFindings(results) {
		exitCode = 1
	}
	return nil
}

// resolveOutputFlags loads the config and lets command-line flags override
// the manifest's output section.
func resolveOutputFlags(cmd *cobra.Command) (config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return cfg, err
	}
	if format, _ := cmd.Flags().GetString("format"); format != "" { //nolint:errcheck // flag is registered
		switch format {
		case "pretty", "json":
			cfg.Output.Format = format
		default:
			return cfg, fmt.Errorf("invalid --format value %q (expected pretty|json)", format)
		}
	}
	if pathMode, _ := cmd.Flags().GetString("path-mode"); pathMode != "" { //nolint:errcheck // flag is registered
		switch pathMode {
		case "auto", "absolute", "relative", "basename":
			cfg.Output.PathMode = pathMode
		default:
			return cfg, fmt.Errorf("invalid --path-mode value %q", pathMode)
		}
	}
	return cfg, nil
}

// errorsOnly drops everything below error severity, for --no-warnings.
func errorsOnly(results []driver.FileResult) []driver.FileResult {
	for i := range results {
		kept := results[i].Diags[:0]
		for _, d := range results[i].Diags {
			if d.Severity >= diag.SevError {
				kept = append(kept, d)
			}
		}
		results[i].Diags = kept
	}
	return results
}

func renderResults(cmd *cobra.Command, cfg config.Config, results []driver.FileResult) error {
	files := make([]diagfmt.File, 0, len(results))
	total := 0
	maxDiags, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics") //nolint:errcheck // flag is registered
	truncated := 0
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "rlint: %s: %v\n", r.Path, r.Err)
			continue
		}
		diags := r.Diags
		if maxDiags > 0 && total+len(diags) > maxDiags {
			keep := max(maxDiags-total, 0)
			truncated += len(diags) - keep
			diags = diags[:keep]
		}
		total += len(diags)
		files = append(files, diagfmt.File{Path: r.Path, Content: r.Content, Diags: diags})
	}

	pathMode := diagfmt.ParsePathMode(cfg.Output.PathMode)
	if cfg.Output.Format == "json" {
		return diagfmt.JSON(cmd.OutOrStdout(), files, diagfmt.JSONOpts{PathMode: pathMode})
	}
	if err := diagfmt.Pretty(cmd.OutOrStdout(), files, diagfmt.PrettyOpts{
		Color:    !color.NoColor,
		PathMode: pathMode,
	}); err != nil {
		return err
	}
	if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); quiet { //nolint:errcheck // flag is registered
		return nil
	}
	if truncated > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "(%d finding(s) hidden by --max-diagnostics)\n", truncated)
	}
	if n := diagfmt.Count(files); n > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%d finding(s) in %d file(s)\n", n, len(files))
	}
	return nil
}

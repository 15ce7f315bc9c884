package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"rlint/internal/diag"
)

var rulesFormat string

var rulesCmd = &cobra.Command{
	Use:          "rules",
	Short:        "List every lint rule and its defaults",
	SilenceUsage: true,
	RunE:         runRules,
}

func init() {
	rulesCmd.Flags().StringVar(&rulesFormat, "format", "pretty", "output format (pretty|json)")
}

type ruleJSON struct {
	Name           string `json:"name"`
	Category       string `json:"category"`
	DefaultEnabled bool   `json:"default_enabled"`
	FixSafe        bool   `json:"fix_safe"`
	Doc            string `json:"doc"`
}

func runRules(cmd *cobra.Command, _ []string) error {
	rules := diag.AllRules()

	switch rulesFormat {
	case "json":
		out := make([]ruleJSON, 0, len(rules))
		for _, r := range rules {
			out = append(out, ruleJSON{
				Name:           string(r.Name),
				Category:       r.Category.String(),
				DefaultEnabled: r.DefaultEnabled,
				FixSafe:        r.FixSafe,
				Doc:            r.Doc,
			})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "pretty":
		for _, r := range rules {
			state := "off"
			if r.DefaultEnabled {
				state = "on"
			}
			fix := " "
			if r.FixSafe {
				fix = "fixable"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-28s %-12s %-3s %-7s %s\n", r.Name, r.Category, state, fix, r.Doc)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", rulesFormat)
	}
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rlint/internal/config"
)

// loadConfig resolves the effective configuration: an explicit --config path
// wins, otherwise the manifest found by walking up from the working
// directory, otherwise the defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	if explicit != "" {
		return config.Load(explicit)
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, err
	}
	path, found, err := config.Find(wd)
	if err != nil {
		return config.Config{}, err
	}
	if !found {
		return config.Default(), nil
	}
	return config.Load(path)
}

// setupColor applies the --color flag to the process-wide color state.
func setupColor(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	switch strings.TrimSpace(strings.ToLower(mode)) {
	case "", "auto":
		color.NoColor = !isTerminal(os.Stdout)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

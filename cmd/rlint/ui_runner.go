package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"rlint/internal/driver"
	"rlint/internal/ui"
)

type lintOutcome struct {
	results []driver.FileResult
	err     error
}

// runLintWithUI drives the linter behind a progress display. The driver
// closes the event channel when it returns, which quits the program.
func runLintWithUI(ctx context.Context, title string, paths []string, opts driver.Options) ([]driver.FileResult, error) {
	files, err := driver.Discover(paths, opts.Config)
	if err != nil {
		return nil, err
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan lintOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Events = events
		results, err := driver.Run(ctx, paths, optsCopy)
		outcomeCh <- lintOutcome{results: results, err: err}
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"lilit/internal/driver"
	"lilit/internal/ui"
)

type checkOutcome struct {
	result *driver.Result
	err    error
}

// runCheckWithUI гоняет driver.Check в фоне и рисует прогресс в stderr.
func runCheckWithUI(ctx context.Context, title string, files, paths []string, opts driver.Options) (*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.Check(ctx, paths, optsCopy)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

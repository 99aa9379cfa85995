package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"lumen/internal/driver"
	"lumen/internal/ui"
)

type lowerOutcome struct {
	results []*driver.Result
	err     error
}

// runLowerDirWithUI runs the directory lowering while a Bubble Tea
// progress model consumes the driver's events.
func runLowerDirWithUI(ctx context.Context, dir string, opts *driver.Options) ([]*driver.Result, error) {
	files, err := driver.ListUnitFiles(dir)
	if err != nil {
		return nil, err
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan lowerOutcome, 1)

	go func() {
		optsCopy := *opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		results, err := driver.LowerDir(ctx, dir, &optsCopy)
		outcomeCh <- lowerOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("lowering "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

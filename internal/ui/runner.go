package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"cfront/internal/buildpipeline"
)

// Run shows the progress of work while it runs. work receives the sink to
// report into; its error is returned after the view exits. A failure of
// the view itself is returned only when work succeeded.
func Run(out io.Writer, title string, files []string, work func(buildpipeline.ProgressSink) error) error {
	events := make(chan buildpipeline.Event, 256)
	done := make(chan error, 1)
	go func() {
		err := work(buildpipeline.ChannelSink{Ch: events})
		close(events)
		done <- err
	}()

	program := tea.NewProgram(NewProgressModel(title, files, events), tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	if uiErr != nil {
		// keep draining so work never blocks on a full channel
		go func() {
			for range events {
			}
		}()
	}
	err := <-done
	if err != nil {
		return err
	}
	return uiErr
}

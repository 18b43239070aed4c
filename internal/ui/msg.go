package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rovshanmuradov/betsim/internal/events"
)

// Tea message types for UI communication

// BatchStartedMsg marks the start of a batch.
type BatchStartedMsg struct {
	Batch  int
	Trials int
}

// BatchDoneMsg carries a finished batch.
type BatchDoneMsg struct {
	Batch    int
	Trials   int
	Wins     int
	Losses   int
	Duration time.Duration
}

// RunDoneMsg is sent once the driver returns.
type RunDoneMsg struct {
	Batches  int
	Wins     int
	Losses   int
	Seed     uint64
	Duration time.Duration
	Err      error
}

// tickMsg refreshes the log pane.
type tickMsg time.Time

// toMsg converts a bus event into a tea message.
func toMsg(e events.Event) (tea.Msg, bool) {
	switch ev := e.(type) {
	case events.BatchStartedEvent:
		return BatchStartedMsg{Batch: ev.Batch, Trials: ev.Trials}, true
	case events.BatchCompletedEvent:
		return BatchDoneMsg{
			Batch:    ev.Batch,
			Trials:   ev.Trials,
			Wins:     ev.Wins,
			Losses:   ev.Losses,
			Duration: ev.Duration,
		}, true
	case events.RunCompletedEvent:
		return RunDoneMsg{
			Batches:  ev.Batches,
			Wins:     ev.Wins,
			Losses:   ev.Losses,
			Seed:     ev.Seed,
			Duration: ev.Duration,
			Err:      ev.Err,
		}, true
	default:
		return nil, false
	}
}

// Listen returns a tea.Cmd that waits for the next message on ch.
func Listen(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

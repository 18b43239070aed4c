package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/rovshanmuradov/betsim/internal/events"
	"github.com/rovshanmuradov/betsim/internal/logger"
)

func TestModelTracksBatches(t *testing.T) {
	m := NewModel(make(chan tea.Msg), nil, 2, 100, nil)
	assert.Zero(t, m.Percent())

	m.Update(BatchStartedMsg{Batch: 0, Trials: 100})
	assert.Contains(t, m.View(), "running...")

	_, cmd := m.Update(BatchDoneMsg{Batch: 0, Trials: 100, Wins: 37, Losses: 63})
	assert.NotNil(t, cmd, "keeps listening after a batch")
	assert.InDelta(t, 0.5, m.Percent(), 1e-9)

	m.Update(BatchDoneMsg{Batch: 1, Trials: 100, Wins: 35, Losses: 65})
	_, cmd = m.Update(RunDoneMsg{Batches: 2, Wins: 72, Losses: 128, Seed: 9, Duration: time.Second})
	assert.Nil(t, cmd)
	assert.True(t, m.Finished())
	assert.InDelta(t, 1.0, m.Percent(), 1e-9)

	view := m.View()
	assert.Contains(t, view, "2/2")
	assert.Contains(t, view, "37")
	assert.Contains(t, view, "65")
	assert.Contains(t, view, "Seed 9")
}

func TestModelShowsRunError(t *testing.T) {
	m := NewModel(make(chan tea.Msg), nil, 3, 10, nil)
	m.Update(RunDoneMsg{Err: errors.New("context canceled")})
	assert.Contains(t, m.View(), "Stopped: context canceled")
}

func TestModelQuitCancelsRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := NewModel(make(chan tea.Msg), nil, 1, 1, cancel)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestModelRendersLogs(t *testing.T) {
	buf := logger.NewLogBuffer(10)
	log, err := logger.NewBuffered(false, buf)
	require.NoError(t, err)
	log.Info("Simulation started")

	m := NewModel(make(chan tea.Msg), buf, 1, 1, nil)
	assert.Contains(t, m.View(), "Simulation started")
}

func TestUpdateSenderForwardsBusEvents(t *testing.T) {
	bus := events.NewBus(zaptest.NewLogger(t), 8)
	sender := NewUpdateSender(8, zap.NewNop())
	sender.Attach(bus)
	defer sender.Close()

	require.NoError(t, bus.Publish(events.BatchCompletedEvent{BaseEvent: events.NewBase(events.BatchCompleted), Batch: 3, Wins: 1}))
	require.NoError(t, bus.Publish(events.RunCompletedEvent{BaseEvent: events.NewBase(events.RunCompleted), Batches: 4}))
	require.NoError(t, bus.Shutdown(context.Background()))

	first := <-sender.Messages()
	assert.Equal(t, BatchDoneMsg{Batch: 3, Wins: 1}, first)
	second := <-sender.Messages()
	assert.Equal(t, 4, second.(RunDoneMsg).Batches)

	sent, dropped := sender.GetStats()
	assert.Equal(t, uint64(2), sent)
	assert.Zero(t, dropped)
}

func TestUpdateSenderDropsWhenFull(t *testing.T) {
	sender := NewUpdateSender(1, zap.NewNop())
	sender.SendUpdate(BatchStartedMsg{})
	sender.SendUpdate(BatchStartedMsg{})

	sent, dropped := sender.GetStats()
	assert.Equal(t, uint64(1), sent)
	assert.Equal(t, uint64(1), dropped)
}

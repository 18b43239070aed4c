package ui

import (
	"context"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/betsim/internal/events"
)

// UpdateSender forwards simulator events to the TUI without ever blocking
// the event bus. Messages that do not fit are counted and dropped.
type UpdateSender struct {
	msgChan        chan tea.Msg
	droppedUpdates uint64
	sentUpdates    uint64
	logger         *zap.Logger
	subs           []events.Subscription
}

// NewUpdateSender creates a sender with room for buffer pending messages.
func NewUpdateSender(buffer int, logger *zap.Logger) *UpdateSender {
	return &UpdateSender{
		msgChan: make(chan tea.Msg, buffer),
		logger:  logger.Named("ui"),
	}
}

// Attach subscribes the sender to every simulator event on bus.
func (us *UpdateSender) Attach(bus *events.Bus) {
	for _, t := range []events.EventType{events.BatchStarted, events.BatchCompleted, events.RunCompleted} {
		us.subs = append(us.subs, bus.SubscribeFunc(t, func(_ context.Context, e events.Event) error {
			if msg, ok := toMsg(e); ok {
				us.SendUpdate(msg)
			}
			return nil
		}))
	}
}

// SendUpdate sends a message to UI without blocking
func (us *UpdateSender) SendUpdate(msg tea.Msg) {
	select {
	case us.msgChan <- msg:
		atomic.AddUint64(&us.sentUpdates, 1)
	default:
		atomic.AddUint64(&us.droppedUpdates, 1)
		us.logger.Warn("UI update dropped")
	}
}

// Messages exposes the channel the model listens on.
func (us *UpdateSender) Messages() <-chan tea.Msg {
	return us.msgChan
}

// GetStats returns current statistics
func (us *UpdateSender) GetStats() (sent, dropped uint64) {
	return atomic.LoadUint64(&us.sentUpdates), atomic.LoadUint64(&us.droppedUpdates)
}

// Close removes the bus subscriptions.
func (us *UpdateSender) Close() {
	for _, s := range us.subs {
		s.Unsubscribe()
	}
	us.subs = nil
}

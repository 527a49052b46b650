package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/backup-files/internal/mirror"
)

// EngineEventMsg wraps a mirror.Event for use as a tea.Msg.
type EngineEventMsg struct {
	Event mirror.Event
}

// EventBridge adapts mirror engine events to bubble tea messages. It
// implements mirror.EventEmitter; the engine goroutine feeds the
// channel and the TUI drains it with ListenCmd.
type EventBridge struct {
	eventChan chan tea.Msg
	closed    bool
}

// NewEventBridge creates a new event bridge.
func NewEventBridge() *EventBridge {
	return &EventBridge{
		eventChan: make(chan tea.Msg, 100), // buffered so the engine never blocks on the UI
	}
}

// Emit implements mirror.EventEmitter. A full channel drops the event
// rather than stalling the walk; the TUI only shows progress, it never
// needs every event.
func (b *EventBridge) Emit(event mirror.Event) {
	if b.closed {
		return
	}

	select {
	case b.eventChan <- EngineEventMsg{Event: event}:
	default:
	}
}

// ListenCmd returns a tea.Cmd that blocks until the next event. Issue
// it from Init and again after handling each event.
func (b *EventBridge) ListenCmd() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-b.eventChan
		if !ok {
			return nil
		}

		return msg
	}
}

// Close closes the event channel. Call when the run is over.
func (b *EventBridge) Close() {
	if !b.closed {
		b.closed = true
		close(b.eventChan)
	}
}

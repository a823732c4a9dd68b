package tui

import (
	"context"

	"crm-console/internal/events"
)

const kindScreen = "screen"

// Event - тост мутации или сигнал об изменении экрана.
type Event struct {
	Kind    string
	Message string
	Screen  string
	Part    string
}

// Notifier реализует screens.Notifier для одного терминала. Полный буфер
// отбрасывает событие: экран всё равно перечитывается после ответа.
type Notifier struct {
	events chan Event
}

func NewNotifier() *Notifier {
	return &Notifier{events: make(chan Event, 64)}
}

func (n *Notifier) Events() <-chan Event { return n.events }

func (n *Notifier) Success(_ context.Context, message string) {
	n.push(Event{Kind: events.ToastSuccess, Message: message})
}

func (n *Notifier) Failure(_ context.Context, message string) {
	n.push(Event{Kind: events.ToastFailure, Message: message})
}

func (n *Notifier) ScreenUpdated(_ context.Context, screen, part string) {
	n.push(Event{Kind: kindScreen, Screen: screen, Part: part})
}

func (n *Notifier) push(e Event) {
	select {
	case n.events <- e:
	default:
	}
}

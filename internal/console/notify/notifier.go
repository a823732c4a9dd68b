// Package notify turns mutation outcomes into toast events for the session
// that issued them.
package notify

import (
	"context"

	"go.uber.org/zap"

	"crm-console/internal/events"
	"crm-console/pkg/contextkeys"
	"crm-console/pkg/eventbus"
)

// Publisher - часть eventbus.Bus, нужная уведомителю.
type Publisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

// Notifier реализует mutation.Notifier поверх шины событий.
type Notifier struct {
	bus    Publisher
	logger *zap.Logger
}

func New(bus Publisher, logger *zap.Logger) *Notifier {
	return &Notifier{bus: bus, logger: logger.Named("notify")}
}

func (n *Notifier) Success(ctx context.Context, message string) {
	n.toast(ctx, events.ToastSuccess, message)
}

func (n *Notifier) Failure(ctx context.Context, message string) {
	n.toast(ctx, events.ToastFailure, message)
}

func (n *Notifier) toast(ctx context.Context, kind, message string) {
	sessionID := SessionID(ctx)
	if sessionID == "" {
		n.logger.Debug("Тост без сессии пропущен", zap.String("kind", kind), zap.String("message", message))
		return
	}
	n.bus.Publish(ctx, events.ToastEvent{SessionID: sessionID, Kind: kind, Message: message})
}

// ScreenUpdated сообщает клиентам сессии, что экран нужно перерисовать.
func (n *Notifier) ScreenUpdated(ctx context.Context, screen, part string) {
	sessionID := SessionID(ctx)
	if sessionID == "" {
		return
	}
	n.bus.Publish(ctx, events.ScreenUpdatedEvent{SessionID: sessionID, Screen: screen, Part: part})
}

func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, contextkeys.SessionKey, sessionID)
}

func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(contextkeys.SessionKey).(string)
	return id
}

package listeners

import (
	"context"

	"go.uber.org/zap"

	"crm-console/internal/events"
	"crm-console/pkg/eventbus"
	"crm-console/pkg/websocket"
)

// SessionPusher - то, что умеет доставить сообщение всем соединениям сессии.
type SessionPusher interface {
	SendToSession(sessionID string, messageType string, payload interface{}) error
}

type toastPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type screenPayload struct {
	Screen string `json:"screen"`
	Part   string `json:"part"`
}

// NotificationListener пересылает события консоли в WebSocket.
type NotificationListener struct {
	pusher SessionPusher
	logger *zap.Logger
}

func NewNotificationListener(pusher SessionPusher, logger *zap.Logger) *NotificationListener {
	return &NotificationListener{pusher: pusher, logger: logger.Named("notification-listener")}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.ToastEvent{}.Name(), l.handleToast)
	bus.Subscribe(events.ScreenUpdatedEvent{}.Name(), l.handleScreenUpdated)
	l.logger.Info("NotificationListener подписан на события консоли")
}

func (l *NotificationListener) handleToast(_ context.Context, event eventbus.Event) error {
	e, ok := event.(events.ToastEvent)
	if !ok || e.SessionID == "" {
		return nil
	}
	return l.pusher.SendToSession(e.SessionID, websocket.TypeToast, toastPayload{Kind: e.Kind, Message: e.Message})
}

func (l *NotificationListener) handleScreenUpdated(_ context.Context, event eventbus.Event) error {
	e, ok := event.(events.ScreenUpdatedEvent)
	if !ok || e.SessionID == "" {
		return nil
	}
	return l.pusher.SendToSession(e.SessionID, websocket.TypeScreenUpdated, screenPayload{Screen: e.Screen, Part: e.Part})
}

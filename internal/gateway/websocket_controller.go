package gateway

import (
	"net/http"
	"slices"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"crm-console/internal/console/session"
	appwebsocket "crm-console/pkg/websocket"
)

type WebSocketController struct {
	hub      *appwebsocket.Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewWebSocketController: пустой allowedOrigins разрешает любой Origin.
func NewWebSocketController(hub *appwebsocket.Hub, allowedOrigins []string, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, origin)
			},
		},
		logger: logger.Named("ws-ctrl"),
	}
}

// ServeWs подключает соединение к сессии из session middleware.
func (ctrl *WebSocketController) ServeWs(c echo.Context) error {
	sess := session.FromContext(c)
	if sess == nil {
		return c.String(http.StatusUnauthorized, "Missing session")
	}

	conn, err := ctrl.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		ctrl.logger.Error("WebSocket: не удалось улучшить соединение", zap.Error(err))
		return err
	}

	client := appwebsocket.NewClient(ctrl.hub, conn, sess.ID)
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	ctrl.logger.Info("WebSocket: клиент подключен", zap.String("session", sess.ID))
	return nil
}

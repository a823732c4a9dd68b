package websocket

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Hub держит соединения консоли, сгруппированные по идентификатору сессии.
type Hub struct {
	sessions   map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	expel      chan string
	outbound   chan outbound
	done       chan struct{}
	logger     *zap.Logger
}

type outbound struct {
	sessionID string
	message   []byte
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		sessions:   make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		expel:      make(chan string),
		outbound:   make(chan outbound, 256),
		done:       make(chan struct{}),
		logger:     logger.Named("ws-hub"),
	}
}

// Run - единственная горутина, которая трогает карту соединений.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if h.sessions[client.SessionID] == nil {
				h.sessions[client.SessionID] = make(map[*Client]struct{})
			}
			h.sessions[client.SessionID][client] = struct{}{}
			h.logger.Debug("Клиент зарегистрирован", zap.String("session", client.SessionID))
		case client := <-h.unregister:
			h.drop(client)
		case sessionID := <-h.expel:
			for client := range h.sessions[sessionID] {
				h.drop(client)
			}
		case msg := <-h.outbound:
			for client := range h.sessions[msg.sessionID] {
				select {
				case client.Send <- msg.message:
				default:
					// медленный клиент, отключаем
					h.drop(client)
				}
			}
		case <-h.done:
			for _, clients := range h.sessions {
				for client := range clients {
					close(client.Send)
				}
			}
			h.sessions = map[string]map[*Client]struct{}{}
			return
		}
	}
}

func (h *Hub) drop(client *Client) {
	clients, ok := h.sessions[client.SessionID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.Send)
	if len(clients) == 0 {
		delete(h.sessions, client.SessionID)
	}
	h.logger.Debug("Клиент отсоединен", zap.String("session", client.SessionID))
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// DropSession отключает все соединения сессии (выход или истечение срока).
func (h *Hub) DropSession(sessionID string) {
	select {
	case h.expel <- sessionID:
	case <-h.done:
	}
}

func (h *Hub) Stop() { close(h.done) }

// SendToSession ставит сообщение в очередь для всех соединений сессии.
func (h *Hub) SendToSession(sessionID string, messageType string, payload interface{}) error {
	messageBytes, err := json.Marshal(Envelope{
		Type:      messageType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		h.logger.Error("Ошибка сериализации сообщения для WebSocket", zap.Error(err))
		return err
	}
	select {
	case h.outbound <- outbound{sessionID: sessionID, message: messageBytes}:
	case <-h.done:
	}
	return nil
}

package websocket

import "time"

const (
	TypeToast         = "toast"
	TypeScreenUpdated = "screen.updated"
)

// Envelope - конверт сообщения для презентационного слоя.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

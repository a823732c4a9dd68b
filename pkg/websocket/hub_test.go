package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHub_SendToSessionReachesOnlyThatSession(t *testing.T) {
	hub := NewHub(zap.NewNop())
	go hub.Run()
	defer hub.Stop()

	mine := NewClient(hub, nil, "session-a")
	other := NewClient(hub, nil, "session-b")
	hub.Register(mine)
	hub.Register(other)

	require.NoError(t, hub.SendToSession("session-a", TypeToast, map[string]string{"message": "Lead created"}))

	select {
	case raw := <-mine.Send:
		var env Envelope
		require.NoError(t, json.Unmarshal(raw, &env))
		assert.Equal(t, TypeToast, env.Type)
		assert.Equal(t, map[string]interface{}{"message": "Lead created"}, env.Payload)
	case <-time.After(time.Second):
		t.Fatal("сообщение не доставлено")
	}

	select {
	case <-other.Send:
		t.Fatal("чужая сессия получила сообщение")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_DropSessionClosesOnlyThatSession(t *testing.T) {
	hub := NewHub(zap.NewNop())
	go hub.Run()
	defer hub.Stop()

	first := NewClient(hub, nil, "session-a")
	second := NewClient(hub, nil, "session-a")
	other := NewClient(hub, nil, "session-b")
	hub.Register(first)
	hub.Register(second)
	hub.Register(other)

	hub.DropSession("session-a")

	for _, c := range []*Client{first, second} {
		select {
		case _, ok := <-c.Send:
			assert.False(t, ok, "канал клиента должен быть закрыт")
		case <-time.After(time.Second):
			t.Fatal("клиент сессии не отключен")
		}
	}

	require.NoError(t, hub.SendToSession("session-b", TypeToast, "still here"))
	select {
	case _, ok := <-other.Send:
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("другая сессия потеряла соединение")
	}
}

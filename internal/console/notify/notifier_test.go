package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crm-console/internal/events"
	"crm-console/internal/listeners"
	"crm-console/pkg/eventbus"
)

type recordingPusher struct {
	mu   sync.Mutex
	sent []string
	ch   chan struct{}
}

func (p *recordingPusher) SendToSession(sessionID, messageType string, _ interface{}) error {
	p.mu.Lock()
	p.sent = append(p.sent, sessionID+"|"+messageType)
	p.mu.Unlock()
	p.ch <- struct{}{}
	return nil
}

func TestNotifier_ToastReachesSession(t *testing.T) {
	logger := zap.NewNop()
	bus := eventbus.New(logger)
	pusher := &recordingPusher{ch: make(chan struct{}, 4)}
	listeners.NewNotificationListener(pusher, logger).Register(bus)

	n := New(bus, logger)
	n.Success(WithSessionID(context.Background(), "s-1"), "Lead updated")

	select {
	case <-pusher.ch:
	case <-time.After(2 * time.Second):
		t.Fatal("тост не доставлен")
	}
	pusher.mu.Lock()
	defer pusher.mu.Unlock()
	assert.Equal(t, []string{"s-1|toast"}, pusher.sent)
}

type capturePublisher struct{ got []eventbus.Event }

func (c *capturePublisher) Publish(_ context.Context, e eventbus.Event) { c.got = append(c.got, e) }

func TestNotifier_KindsAndMissingSession(t *testing.T) {
	pub := &capturePublisher{}
	n := New(pub, zap.NewNop())

	n.Failure(context.Background(), "dropped")
	assert.Empty(t, pub.got)

	ctx := WithSessionID(context.Background(), "abc")
	n.Failure(ctx, "Failed to delete lead")
	n.ScreenUpdated(ctx, "leads", "list")

	require.Len(t, pub.got, 2)
	assert.Equal(t, events.ToastEvent{SessionID: "abc", Kind: events.ToastFailure, Message: "Failed to delete lead"}, pub.got[0])
	assert.Equal(t, events.ScreenUpdatedEvent{SessionID: "abc", Screen: "leads", Part: "list"}, pub.got[1])
}

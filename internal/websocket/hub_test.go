// internal/websocket/hub_test.go
package websocket

import (
	"context"
	"testing"
	"time"

	wstypes "homescout-service/internal/domain/websocket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(hub *Hub, userID int64) *Client {
	return NewClient(hub, nil, &ClientAuth{UserID: userID, SessionID: "test-session"})
}

func registerAndWait(t *testing.T, hub *Hub, client *Client) {
	t.Helper()
	hub.Register <- client
	require.Eventually(t, func() bool {
		return hub.TotalClients() > 0
	}, time.Second, 5*time.Millisecond)
}

// A consumer that stops reading must be dropped, not crash the hub or
// block it.
func TestSendMessageFullQueueDropsClient(t *testing.T) {
	hub := NewHub(nil, nil, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := newTestClient(hub, 7)
	registerAndWait(t, hub, client)

	// No pumps are running, so the buffer only drains when we say so.
	// Overfill it well past capacity; the overflow path must never panic.
	assert.NotPanics(t, func() {
		for i := 0; i < cap(client.send)+10; i++ {
			client.SendMessage(wstypes.NewMessage(wstypes.EventTypePing, nil))
		}
	})

	require.Eventually(t, func() bool {
		return hub.TotalClients() == 0
	}, time.Second, 5*time.Millisecond)
}

// The overflow can also fire inside the hub's own delivery loop; the hub
// must drop the slow client and keep serving everyone else.
func TestBroadcastToSlowClientKeepsHubResponsive(t *testing.T) {
	hub := NewHub(nil, nil, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	slow := newTestClient(hub, 1)
	registerAndWait(t, hub, slow)

	// Fill the queue exactly (the welcome frame holds one slot already) so
	// the overflow trips inside the hub's own delivery loop.
	for i := 0; i < cap(slow.send)-1; i++ {
		slow.SendMessage(wstypes.NewMessage(wstypes.EventTypePing, nil))
	}
	hub.BroadcastNotificationCount(1, 42)
	hub.BroadcastNotificationCount(1, 43)

	require.Eventually(t, func() bool {
		return hub.TotalClients() == 0
	}, time.Second, 5*time.Millisecond)

	// The hub loop must still accept new registrations afterwards.
	healthy := newTestClient(hub, 2)
	registerAndWait(t, hub, healthy)
	assert.Equal(t, 1, hub.TotalClients())
}

func TestClientCloseIdempotent(t *testing.T) {
	hub := NewHub(nil, nil, zap.NewNop())
	client := newTestClient(hub, 3)

	assert.NotPanics(t, func() {
		client.Close()
		client.Close()
	})

	// A dropped client silently discards further messages.
	assert.NotPanics(t, func() {
		client.SendMessage(wstypes.NewMessage(wstypes.EventTypePing, nil))
	})
}

func TestUnregisterUnknownClientIsNoOp(t *testing.T) {
	hub := NewHub(nil, nil, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	stranger := newTestClient(hub, 9)
	hub.unregister <- stranger

	assert.Equal(t, 0, hub.TotalClients())
}

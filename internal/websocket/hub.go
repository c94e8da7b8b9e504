// internal/websocket/hub.go
package websocket

import (
	"context"
	"sync"

	wstypes "homescout-service/internal/domain/websocket"
	"homescout-service/internal/pkg/jwt"
	"homescout-service/internal/pkg/session"

	"go.uber.org/zap"
)

// Hub tracks connected clients per user and fans out realtime events.
type Hub struct {
	clients map[int64]map[*Client]bool
	mu      sync.RWMutex

	Register   chan *Client
	unregister chan *Client
	broadcast  chan *BroadcastMessage

	jwtManager     *jwt.Manager
	sessionManager *session.Manager
	logger         *zap.Logger
}

type BroadcastMessage struct {
	UserIDs []int64 // nil broadcasts to everyone
	Channel wstypes.ChannelType
	Message *wstypes.WSMessage
}

func NewHub(jwtManager *jwt.Manager, sessionManager *session.Manager, logger *zap.Logger) *Hub {
	return &Hub{
		clients:        make(map[int64]map[*Client]bool),
		Register:       make(chan *Client),
		unregister:     make(chan *Client),
		broadcast:      make(chan *BroadcastMessage, 256),
		jwtManager:     jwtManager,
		sessionManager: sessionManager,
		logger:         logger,
	}
}

// AuthenticateClient validates the JWT token against the session store and
// returns the client identity.
func (h *Hub) AuthenticateClient(ctx context.Context, token string) (*ClientAuth, error) {
	claims, err := h.jwtManager.Verify(token)
	if err != nil {
		return nil, err
	}

	blacklisted, err := h.sessionManager.IsTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, ErrTokenBlacklisted
	}

	if _, err := h.sessionManager.GetSession(ctx, claims.UserID, claims.ID); err != nil {
		return nil, ErrSessionExpired
	}

	return &ClientAuth{
		UserID:    claims.UserID,
		SessionID: claims.ID,
		Email:     claims.Email,
		Role:      claims.Role,
	}, nil
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return
		case client := <-h.Register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.userID] == nil {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	h.logger.Info("websocket client connected",
		zap.Int64("user_id", client.userID),
		zap.String("session_id", client.sessionID),
		zap.Int("total", h.totalLocked()),
	)

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeConnected, map[string]interface{}{
		"user_id":    client.userID,
		"session_id": client.sessionID,
		"role":       client.role,
	}))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}

	delete(clients, client)
	client.Close()
	if len(clients) == 0 {
		delete(h.clients, client.userID)
	}

	h.logger.Info("websocket client disconnected",
		zap.Int64("user_id", client.userID),
		zap.Int("total", h.totalLocked()),
	)
}

func (h *Hub) deliver(msg *BroadcastMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if msg.UserIDs == nil {
		for _, clients := range h.clients {
			for client := range clients {
				if client.IsSubscribed(msg.Channel) {
					client.SendMessage(msg.Message)
				}
			}
		}
		return
	}

	for _, userID := range msg.UserIDs {
		for client := range h.clients[userID] {
			if client.IsSubscribed(msg.Channel) {
				client.SendMessage(msg.Message)
			}
		}
	}
}

// BroadcastNotification pushes a freshly created notification to all of the
// user's live connections.
func (h *Hub) BroadcastNotification(userID int64, n *wstypes.NotificationData) {
	h.broadcast <- &BroadcastMessage{
		UserIDs: []int64{userID},
		Channel: wstypes.ChannelNotifications,
		Message: wstypes.NewMessage(wstypes.EventTypeNotification, n),
	}
}

// BroadcastNotificationCount pushes the new unread counter.
func (h *Hub) BroadcastNotificationCount(userID int64, count int64) {
	h.broadcast <- &BroadcastMessage{
		UserIDs: []int64{userID},
		Channel: wstypes.ChannelNotifications,
		Message: wstypes.NewMessage(wstypes.EventTypeNotificationCount, map[string]interface{}{
			"unread_count": count,
		}),
	}
}

func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.totalLocked()
}

func (h *Hub) totalLocked() int {
	total := 0
	for _, clients := range h.clients {
		total += len(clients)
	}
	return total
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.clients {
		for client := range clients {
			client.Close()
		}
	}
}

// internal/websocket/client.go
package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	wstypes "homescout-service/internal/domain/websocket"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// ClientAuth holds the authenticated identity behind a connection.
type ClientAuth struct {
	UserID    int64
	SessionID string
	Email     string
	Role      string
}

type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	userID    int64
	sessionID string
	role      string

	subscriptions map[wstypes.ChannelType]bool
	subMu         sync.RWMutex

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func NewClient(hub *Hub, conn *websocket.Conn, auth *ClientAuth) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		hub:       hub,
		conn:      conn,
		send:      make(chan []byte, 256),
		userID:    auth.UserID,
		sessionID: auth.SessionID,
		role:      auth.Role,
		// every client listens to its own notifications by default
		subscriptions: map[wstypes.ChannelType]bool{wstypes.ChannelNotifications: true},
		ctx:           ctx,
		cancel:        cancel,
	}
}

func (c *Client) UserID() int64 { return c.userID }

func (c *Client) Subscribe(channel wstypes.ChannelType) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	c.subscriptions[channel] = true
}

func (c *Client) Unsubscribe(channel wstypes.ChannelType) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	delete(c.subscriptions, channel)
}

func (c *Client) IsSubscribed(channel wstypes.ChannelType) bool {
	c.subMu.RLock()
	defer c.subMu.RUnlock()
	return c.subscriptions[channel]
}

// ReadPump handles incoming messages until the connection drops.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
			_, raw, err := c.conn.ReadMessage()
			if err != nil {
				return
			}
			c.handleMessage(raw)
		}
	}
}

// WritePump flushes outgoing messages and keeps the connection alive with
// pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.ctx.Done():
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(raw []byte) {
	msg, err := wstypes.ParseMessage(raw)
	if err != nil {
		c.SendError("invalid_message", "failed to parse message", err.Error())
		return
	}

	switch msg.Type {
	case wstypes.EventTypePing:
		c.SendMessage(wstypes.NewMessage(wstypes.EventTypePong, nil))

	case wstypes.EventTypeSubscribe, wstypes.EventTypeUnsubscribe:
		var req wstypes.SubscribeRequest
		if err := remarshal(msg.Data, &req); err != nil {
			c.SendError("invalid_subscribe", "invalid subscribe request", err.Error())
			return
		}
		for _, channel := range req.Channels {
			if msg.Type == wstypes.EventTypeSubscribe {
				c.Subscribe(channel)
			} else {
				c.Unsubscribe(channel)
			}
		}
		c.SendMessage(wstypes.NewMessage(msg.Type, map[string]interface{}{
			"channels": req.Channels,
			"status":   "ok",
		}))
	}
}

// SendMessage queues a message; a full queue drops the connection rather
// than blocking the hub. The send channel is never closed here: the client
// is torn down through its context, and unregistration is requested off
// this goroutine because the hub itself may be the caller.
func (c *Client) SendMessage(msg *wstypes.WSMessage) {
	data, err := msg.ToJSON()
	if err != nil {
		return
	}
	select {
	case <-c.ctx.Done():
	case c.send <- data:
	default:
		c.Close()
		go func() { c.hub.unregister <- c }()
	}
}

func (c *Client) SendError(code, message, details string) {
	c.SendMessage(wstypes.NewMessage(wstypes.EventTypeError, wstypes.ErrorData{
		Code:    code,
		Message: message,
		Details: details,
	}))
}

// Close is idempotent: it is reached from the hub, from the pumps and from
// the slow-consumer path in SendMessage. The send channel stays open so
// concurrent senders can never hit a closed channel; WritePump exits via
// the context instead.
func (c *Client) Close() {
	c.closeOnce.Do(c.cancel)
}

// remarshal converts a decoded interface{} into a typed struct.
func remarshal(data interface{}, target interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, target)
}

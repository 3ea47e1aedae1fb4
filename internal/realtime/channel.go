// Package realtime maintains the bidirectional event connection to the
// backend. One Channel is dialed per logical session and shared by everything
// on that session; it is an explicitly constructed object, not a global.
package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"zocial/models"
)

// Handler receives the raw payload of one event. Handlers for a tag run in
// receipt order from the connection's single read pump.
type Handler func(data json.RawMessage)

// Channel is a live realtime connection. Emit is fire-and-forget: there is no
// acknowledgment, no buffering across a connection loss, and no reconnect.
type Channel struct {
	conn *websocket.Conn

	mu       sync.RWMutex
	handlers map[string][]Handler

	writeMu sync.Mutex

	done    chan struct{}
	closing sync.Once

	logger *slog.Logger
}

// Dial connects to the backend's websocket endpoint, presenting the session
// token as the handshake credential.
func Dial(ctx context.Context, baseURL, token string) (*Channel, error) {
	loc := strings.Replace(strings.TrimSuffix(baseURL, "/"), "http", "ws", 1) +
		"/ws?token=" + url.QueryEscape(token)

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, loc, nil)
	if resp != nil && resp.Body != nil {
		defer func() { _ = resp.Body.Close() }()
	}
	if err != nil {
		return nil, err
	}

	c := &Channel{
		conn:     conn,
		handlers: make(map[string][]Handler),
		done:     make(chan struct{}),
		logger:   slog.Default(),
	}
	go c.readPump()
	return c, nil
}

// On registers a handler for a tag. Multiple handlers for the same tag
// coexist and all run, in registration order.
func (c *Channel) On(tag string, h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[tag] = append(c.handlers[tag], h)
}

// Emit sends one event. Delivery is at most once: a failed or disconnected
// write is reported but nothing queues the event for later.
func (c *Channel) Emit(tag string, payload any) error {
	evt, err := models.NewEvent(tag, payload)
	if err != nil {
		return err
	}
	frame, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, frame)
}

// Done is closed when the read pump stops, whether by Close or by the peer.
func (c *Channel) Done() <-chan struct{} {
	return c.done
}

// Close sends a close frame and tears the connection down.
func (c *Channel) Close() error {
	c.writeMu.Lock()
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()
	return c.conn.Close()
}

func (c *Channel) readPump() {
	defer c.closing.Do(func() { close(c.done) })

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var evt models.Event
		if err := json.Unmarshal(frame, &evt); err != nil {
			c.logger.Warn("dropping undecodable realtime frame", "error", err)
			continue
		}

		c.mu.RLock()
		handlers := make([]Handler, len(c.handlers[evt.Tag]))
		copy(handlers, c.handlers[evt.Tag])
		c.mu.RUnlock()

		if len(handlers) == 0 {
			c.logger.Debug("no handler for realtime event", "tag", evt.Tag)
			continue
		}
		for _, h := range handlers {
			h(evt.Data)
		}
	}
}

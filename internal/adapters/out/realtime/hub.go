package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
	sendBuffer     = 32
)

type client struct {
	recipient string
	conn      *websocket.Conn
	send      chan []byte
}

// Hub keeps the open connections of this instance grouped by recipient. A
// recipient may hold several connections; each gets its own copy of every
// event. Frames for a connection whose buffer is full are dropped.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]map[*client]struct{}
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger.Named("hub"),
	}
}

// Serve upgrades the request and blocks until the connection closes. The
// caller has already authenticated recipientID.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, recipientID kernel.UUID) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{recipient: recipientID.String(), conn: conn, send: make(chan []byte, sendBuffer)}
	h.register(c)
	h.logger.Debug("connected", zap.String("recipient", c.recipient))

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.writeLoop(c)
	}()

	h.readLoop(c)
	h.unregister(c)
	<-done

	h.logger.Debug("disconnected", zap.String("recipient", c.recipient))
	return nil
}

// Publish implements ports.LiveChannel for a single instance.
func (h *Hub) Publish(_ context.Context, recipientID kernel.UUID, n *notification.Notification) {
	frame, err := encodeNotification(n)
	if err != nil {
		h.logger.Error("encode notification", zap.String("notification", n.ID().String()), zap.Error(err))
		return
	}
	h.Deliver(recipientID.String(), frame)
}

// Deliver queues an encoded frame on every connection of the recipient.
func (h *Hub) Deliver(recipient string, frame []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[recipient] {
		select {
		case c.send <- frame:
		default:
			h.logger.Warn("send buffer full, frame dropped", zap.String("recipient", recipient))
		}
	}
}

// Connections returns the number of open connections of the recipient.
func (h *Hub) Connections(recipientID kernel.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[recipientID.String()])
}

// Close disconnects everyone.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for recipient, set := range h.clients {
		for c := range set {
			close(c.send)
		}
		delete(h.clients, recipient)
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.recipient]
	if !ok {
		set = make(map[*client]struct{})
		h.clients[c.recipient] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.recipient]
	if !ok {
		return
	}
	if _, ok = set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.recipient)
	}
}

// readLoop answers ping events and returns when the peer goes away.
func (h *Hub) readLoop(c *client) {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("read", zap.String("recipient", c.recipient), zap.Error(err))
			}
			return
		}

		var in Event
		if err = json.Unmarshal(data, &in); err != nil || in.Event != EventPing {
			continue
		}
		frame, err := encodeEvent(EventPong, pongPayload{Timestamp: time.Now().UnixMilli()})
		if err != nil {
			continue
		}
		h.reply(c, frame)
	}
}

// reply queues a frame for c unless it was closed by Close meanwhile.
func (h *Hub) reply(c *client, frame []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if _, ok := h.clients[c.recipient][c]; !ok {
		return
	}
	select {
	case c.send <- frame:
	default:
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

package websocket

import (
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/karimJD/ws-backend/relay"
)

var (
	errClientClosed = errors.New("client connection closed")
	errSendFull     = errors.New("client send buffer full")
)

// Config tunes the per-connection transport behavior.
type Config struct {
	// Time allowed to write a message to the peer.
	WriteWait time.Duration

	// Time allowed to read the next pong message from the peer. Pings are
	// sent at 9/10 of this period.
	PongWait time.Duration

	// Maximum message size allowed from peer.
	MaxMessageSize int64

	// Capacity of the outbound send buffer before a client is considered
	// too slow and dropped.
	SendBuffer int
}

// DefaultConfig returns the transport defaults.
func DefaultConfig() Config {
	return Config{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		MaxMessageSize: 4096,
		SendBuffer:     256,
	}
}

// Handler upgrades HTTP requests to WebSocket connections and registers them
// with the relay.
type Handler struct {
	relay    *relay.Relay
	cfg      Config
	upgrader websocket.Upgrader
}

// NewHandler creates a WebSocket handler bound to the given relay.
func NewHandler(r *relay.Relay, cfg Config) *Handler {
	return &Handler{
		relay: r,
		cfg:   cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Allow all origins in development
				return true
			},
		},
	}
}

// Client wraps one WebSocket connection. It implements relay.Conn: the relay
// writes through the buffered send channel, and the write pump is the only
// goroutine touching the underlying connection.
type Client struct {
	conn *websocket.Conn
	send chan []byte

	// done is closed exactly once when the client shuts down; writes after
	// that fail immediately instead of touching a closed channel.
	done chan struct{}

	// closeOnce guards close(done): both pumps and the relay's eviction
	// path call Close concurrently on disconnect.
	closeOnce sync.Once
}

// WriteMessage queues a frame for delivery. It never blocks: a full buffer or
// a closed client returns an error, which the relay treats as a dead peer.
func (c *Client) WriteMessage(data []byte) error {
	select {
	case <-c.done:
		return errClientClosed
	default:
	}

	select {
	case c.send <- data:
		return nil
	case <-c.done:
		return errClientClosed
	default:
		return errSendFull
	}
}

// Close tears the client down. Safe to call concurrently from both pumps
// and the relay's eviction path.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
	})
	return c.conn.Close()
}

// RemoteAddr returns the peer's network address.
func (c *Client) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

// ServeHTTP upgrades the request, registers the connection with the relay,
// and starts the client goroutines.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		conn: conn,
		send: make(chan []byte, h.cfg.SendBuffer),
		done: make(chan struct{}),
	}

	// Register before the pumps start; the greeting lands in the buffered
	// send channel and is flushed by the write pump.
	c := h.relay.Register(client)

	go h.writePump(client)
	go h.readPump(client, c.ID)
}

// readPump pumps frames from the WebSocket connection into the relay.
func (h *Handler) readPump(c *Client, id string) {
	defer func() {
		h.relay.Disconnect(id)
		c.Close()
	}()

	c.conn.SetReadLimit(h.cfg.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
		return nil
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error from %s: %v", id, err)
			}
			break
		}
		h.relay.HandleFrame(id, frame)
	}
}

// writePump pumps frames from the send channel to the WebSocket connection
// and keeps the peer alive with periodic pings.
func (h *Handler) writePump(c *Client) {
	pingPeriod := h.cfg.PongWait * 9 / 10
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Package broadcast streams live game events to WebSocket spectators.
// A Hub fans events out to every connected client; a Feed ties one game
// session to the hub and plugs into the machine as its sinks and hooks.
package broadcast

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Event types.
const (
	EventStart    = "start"
	EventScore    = "score"
	EventLives    = "lives"
	EventGameOver = "gameover"
	EventLeave    = "leave" // The player disconnected
)

const (
	clientBuffer = 64
	writeWait    = 5 * time.Second
	pingInterval = 20 * time.Second
)

// Event is one message sent to spectators.
type Event struct {
	Type    string `json:"type"`
	Session string `json:"session"`
	Value   int    `json:"value"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub keeps the connected spectators.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
	dropped int
}

// NewHub creates an empty hub. A nil logger discards output.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:  logger,
		clients: make(map[*client]struct{}),
	}
}

// Handler upgrades requests to WebSocket connections and registers them.
func (h *Hub) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn("Upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}

		c := &client{conn: conn, send: make(chan []byte, clientBuffer)}
		if !h.add(c) {
			conn.Close()
			return
		}
		h.logger.Info("Spectator connected", "remote", r.RemoteAddr)

		go h.writePump(c)
		h.readPump(c)
	})
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// readPump discards incoming messages and unregisters the client when the
// connection goes away.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.remove(c)
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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

// Publish sends an event to every client without blocking. Clients whose
// buffer is full miss the event.
func (h *Hub) Publish(e Event) {
	msg, err := json.Marshal(e)
	if err != nil {
		h.logger.Error("Encode event", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.dropped++
		}
	}
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Dropped returns how many per-client deliveries were skipped.
func (h *Hub) Dropped() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// Feed publishes the events of one game session.
type Feed struct {
	hub     *Hub
	session string
}

// Feed returns a feed tagging events with the given session name.
func (h *Hub) Feed(session string) *Feed {
	return &Feed{hub: h, session: session}
}

func (f *Feed) publish(typ string, value int) {
	f.hub.Publish(Event{Type: typ, Session: f.session, Value: value})
}

func (f *Feed) ScoreChanged(score int) { f.publish(EventScore, score) }
func (f *Feed) LivesChanged(lives int) { f.publish(EventLives, lives) }
func (f *Feed) OnStart() { f.publish(EventStart, 0) }
func (f *Feed) OnGameOver(finalScore int) { f.publish(EventGameOver, finalScore) }

// Leave tells spectators the session is gone.
func (f *Feed) Leave() { f.publish(EventLeave, 0) }

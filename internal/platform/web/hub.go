// Package web lets spectators follow live AG~3 sessions over WebSocket.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Queued broadcasts before Publish starts dropping.
	broadcastBuffer = 256
)

var errHubStopped = errors.New("web: hub stopped")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Message is the frame sent to spectators.
type Message struct {
	SessionID string `json:"session_id"`
	Event     string `json:"event"`
	Data      any    `json:"data,omitempty"`
}

type envelope struct {
	session string
	data    []byte
	closed  bool
}

// Client is one spectator connection.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

// Hub fans session snapshots out to spectators. All session state lives in
// the Run goroutine.
type Hub struct {
	sessions   map[string]map[*Client]bool
	latest     map[string][]byte
	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client
	list       chan chan []string
	done       chan struct{}
	log        *log.Logger
}

// NewHub creates a hub. logger may be nil.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		sessions:   make(map[string]map[*Client]bool),
		latest:     make(map[string][]byte),
		broadcast:  make(chan envelope, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		list:       make(chan chan []string),
		done:       make(chan struct{}),
		log:        logger,
	}
}

// Run processes hub events until ctx is done. It must be called once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, clients := range h.sessions {
				for c := range clients {
					close(c.send)
				}
			}
			h.sessions = make(map[string]map[*Client]bool)
			return

		case c := <-h.register:
			h.registerClient(c)

		case c := <-h.unregister:
			h.unregisterClient(c)

		case env := <-h.broadcast:
			if env.closed {
				delete(h.latest, env.session)
				continue
			}
			h.latest[env.session] = env.data
			h.broadcastMessage(env.session, env.data)

		case reply := <-h.list:
			ids := make([]string, 0, len(h.latest))
			for id := range h.latest {
				ids = append(ids, id)
			}
			slices.Sort(ids)
			reply <- ids
		}
	}
}

// Channel returns the publisher for one game session.
func (h *Hub) Channel(sessionID string) *Channel {
	return &Channel{hub: h, session: sessionID}
}

// Sessions lists sessions that have published at least once.
func (h *Hub) Sessions(ctx context.Context) ([]string, error) {
	reply := make(chan []string, 1)
	select {
	case h.list <- reply:
	case <-h.done:
		return nil, errHubStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case ids := <-reply:
		return ids, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (h *Hub) registerClient(c *Client) {
	if h.sessions[c.sessionID] == nil {
		h.sessions[c.sessionID] = make(map[*Client]bool)
	}
	h.sessions[c.sessionID][c] = true

	if data, ok := h.latest[c.sessionID]; ok {
		c.send <- data
	}
	h.log.Debug("spectator joined", "session", c.sessionID, "watchers", len(h.sessions[c.sessionID]))
}

func (h *Hub) unregisterClient(c *Client) {
	clients, ok := h.sessions[c.sessionID]
	if !ok || !clients[c] {
		return
	}
	delete(clients, c)
	close(c.send)
	if len(clients) == 0 {
		delete(h.sessions, c.sessionID)
	}
	h.log.Debug("spectator left", "session", c.sessionID, "watchers", len(clients))
}

func (h *Hub) broadcastMessage(session string, data []byte) {
	for c := range h.sessions[session] {
		select {
		case c.send <- data:
		default:
			// Slow spectator; drop it rather than stall the session.
			h.unregisterClient(c)
		}
	}
}

// Channel publishes snapshots of one session.
type Channel struct {
	hub     *Hub
	session string
}

// Publish encodes v and queues it for spectators. It never blocks: when the
// hub is backed up the update is dropped.
func (c *Channel) Publish(v any) {
	data, err := json.Marshal(Message{SessionID: c.session, Event: "snapshot", Data: v})
	if err != nil {
		c.hub.log.Warn("cannot encode snapshot", "session", c.session, "error", err)
		return
	}
	select {
	case c.hub.broadcast <- envelope{session: c.session, data: data}:
	default:
	}
}

// Close forgets the session's last snapshot.
func (c *Channel) Close() {
	select {
	case c.hub.broadcast <- envelope{session: c.session, closed: true}:
	default:
	}
}

// ServeWS upgrades a spectator connection for sessionID.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, broadcastBuffer),
		sessionID: sessionID,
	}

	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	case <-r.Context().Done():
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// Handler routes /ws?session=ID and /sessions.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("session")
		if id == "" {
			http.Error(w, "missing session", http.StatusBadRequest)
			return
		}
		h.ServeWS(w, r, id)
	})
	mux.HandleFunc("/sessions", func(w http.ResponseWriter, r *http.Request) {
		ids, err := h.Sessions(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck // Client may have gone away
		json.NewEncoder(w).Encode(ids)
	})
	return mux
}

// ListenAndServe serves the hub on addr until ctx is done.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.log.Info("spectator hub listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// readPump drains the connection so pongs and close frames are seen.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	//nolint:errcheck // Deadline errors surface on the next read
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Debug("websocket error", "error", err)
			}
			return
		}
	}
}

// writePump sends queued snapshots and keepalive pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			//nolint:errcheck // Write errors are reported below
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				//nolint:errcheck // Best-effort close frame
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			//nolint:errcheck // Write errors are reported below
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

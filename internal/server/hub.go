package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gridboard/gridboard/pkg/grid"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The dashboard is same-origin in production; cross-origin clients
		// are only expected in development.
		return true
	},
}

// LayoutEvent is the message broadcast to live subscribers whenever a tab's
// layout is committed.
type LayoutEvent struct {
	Tab      string        `json:"tab"`
	Event    string        `json:"event"`
	Snapshot grid.Snapshot `json:"snapshot"`
}

// client is one websocket subscriber, pinned to a single tab.
type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	tab  string
}

// Hub maintains the set of live subscribers per tab and fans out layout
// events to them.
type Hub struct {
	tabs       map[string]map[*client]bool
	broadcast  chan *LayoutEvent
	register   chan *client
	unregister chan *client
}

// NewHub creates a hub. Run must be called before subscribing clients.
func NewHub() *Hub {
	return &Hub{
		tabs:       make(map[string]map[*client]bool),
		broadcast:  make(chan *LayoutEvent, 16),
		register:   make(chan *client),
		unregister: make(chan *client),
	}
}

// Run processes hub events until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for _, clients := range h.tabs {
				for c := range clients {
					close(c.send)
				}
			}
			return

		case c := <-h.register:
			if h.tabs[c.tab] == nil {
				h.tabs[c.tab] = make(map[*client]bool)
			}
			h.tabs[c.tab][c] = true

		case c := <-h.unregister:
			if clients, ok := h.tabs[c.tab]; ok && clients[c] {
				delete(clients, c)
				close(c.send)
				if len(clients) == 0 {
					delete(h.tabs, c.tab)
				}
			}

		case ev := <-h.broadcast:
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			for c := range h.tabs[ev.Tab] {
				select {
				case c.send <- data:
				default:
					// Slow consumer: drop it rather than block the hub.
					delete(h.tabs[ev.Tab], c)
					close(c.send)
				}
			}
		}
	}
}

// Broadcast queues a layout event for all subscribers of the tab.
func (h *Hub) Broadcast(tab, event string, snap grid.Snapshot) {
	select {
	case h.broadcast <- &LayoutEvent{Tab: tab, Event: event, Snapshot: snap}:
	default:
		// Hub backlog full; live updates are best-effort.
	}
}

// serveWS upgrades the request and subscribes the connection to a tab.
func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request, tab string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, 16), tab: tab}
	h.register <- c

	go c.writePump()
	go c.readPump()
	return nil
}

// readPump discards inbound frames; subscribers are read-only. It exists to
// process control messages and detect closed connections.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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

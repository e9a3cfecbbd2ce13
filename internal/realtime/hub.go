// Package realtime pushes task change events to a user's open websocket
// connections so other tabs and devices know to refresh their views.
package realtime

import (
	"context"
	"encoding/json"
	"log"
)

const (
	EventTasksChanged = "tasks.changed"
	EventPong         = "pong"
)

// Event is the envelope written to clients.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type delivery struct {
	userID  string
	payload []byte
}

// Hub routes events to the connections of one user at a time.
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	publish    chan delivery
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		publish:    make(chan delivery, 256),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		c.closeSend()
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Publish queues event for every connection of userID. It never blocks once
// the hub has stopped.
func (h *Hub) Publish(userID string, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("realtime: failed to marshal %s event: %v", event.Type, err)
		return
	}

	select {
	case h.publish <- delivery{userID: userID, payload: payload}:
	case <-h.done:
	}
}

// Run serves registrations and deliveries until ctx is cancelled, then closes
// every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case c := <-h.register:
			conns, ok := h.clients[c.userID]
			if !ok {
				conns = make(map[*Client]bool)
				h.clients[c.userID] = conns
			}
			conns[c] = true
			log.Printf("realtime: client connected for user %s", c.userID)

		case c := <-h.unregister:
			h.remove(c)

		case d := <-h.publish:
			for c := range h.clients[d.userID] {
				if !c.enqueue(d.payload) {
					log.Printf("realtime: send buffer full, dropping client for user %s", c.userID)
					h.remove(c)
				}
			}

		case <-ctx.Done():
			for _, conns := range h.clients {
				for c := range conns {
					c.closeSend()
				}
			}
			h.clients = make(map[string]map[*Client]bool)
			return
		}
	}
}

func (h *Hub) remove(c *Client) {
	conns, ok := h.clients[c.userID]
	if !ok || !conns[c] {
		return
	}
	delete(conns, c)
	if len(conns) == 0 {
		delete(h.clients, c.userID)
	}
	c.closeSend()
	log.Printf("realtime: client disconnected for user %s", c.userID)
}

package realtime

import (
	"net/http"
	"sync"

	"github.com/TestingSDK2/produco-backend/model"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub table of open connections, kept in registration order
type Hub struct {
	config *Config

	mu      sync.RWMutex
	clients []*Client
}

// NewHub creates an empty connection table
func NewHub(conf *Config) *Hub {
	if conf == nil {
		conf = DefaultConfig()
	}
	return &Hub{config: conf}
}

// ServeHTTP upgrades the request and serves the connection until it closes
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Error("websocket upgrade failed")
		return
	}

	client := newClient(h, conn, h.config.SendBuffer)
	h.register(client)
	client.logger.WithField("remote", r.RemoteAddr).Info("client connected")

	go client.writePump()
	go client.readPump()
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients = append(h.clients, c)
	h.mu.Unlock()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	for i, client := range h.clients {
		if client == c {
			h.clients = append(h.clients[:i:i], h.clients[i+1:]...)
			close(c.done)
			break
		}
	}
	h.mu.Unlock()
	c.logger.Info("client disconnected")
}

// Count number of open connections
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) snapshot() []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	clients := make([]*Client, len(h.clients))
	copy(clients, h.clients)
	return clients
}

// Deliver pushes the notification to the connections selected by target.
// "all" reaches every connection, "admin" and "user" reach members of that
// room, anything else is a user id matched against identified connections.
// Connections identified as exclude are skipped.
func (h *Hub) Deliver(target string, notification *model.Notification, exclude string) int {
	if target == "" {
		return 0
	}

	var selected func(*Client) bool
	switch target {
	case model.RoleAll:
		selected = func(*Client) bool { return true }
	case model.RoleAdmin, model.RoleUser:
		selected = func(c *Client) bool { return c.InRoom(target) }
	default:
		if target == exclude {
			return 0
		}
		selected = func(c *Client) bool { return c.UserID() == target }
	}

	frame, err := encodeFrame(EventNewNotification, notification)
	if err != nil {
		logrus.WithError(err).Error("unable to encode notification frame")
		return 0
	}

	pushed := 0
	for _, c := range h.snapshot() {
		if !selected(c) {
			continue
		}
		if exclude != "" && c.UserID() == exclude {
			continue
		}
		if c.push(frame) {
			pushed++
		}
	}
	return pushed
}

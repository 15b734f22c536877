package realtime

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client one open websocket connection
type Client struct {
	ID string

	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	logger logrus.FieldLogger

	mu     sync.RWMutex
	userID string
	rooms  map[string]bool
}

func newClient(hub *Hub, conn *websocket.Conn, buffer int) *Client {
	id := uuid.NewString()
	return &Client{
		ID:     id,
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, buffer),
		done:   make(chan struct{}),
		logger: logrus.WithField("connection_id", id),
		rooms:  map[string]bool{},
	}
}

// UserID returns the announced user id, empty while unidentified
func (c *Client) UserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

// InRoom reports whether the connection joined the named room
func (c *Client) InRoom(room string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rooms[room]
}

func (c *Client) identify(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.userID != "" {
		delete(c.rooms, c.userID)
	}
	c.userID = userID
	c.rooms[userID] = true
}

func (c *Client) join(room string) {
	c.mu.Lock()
	c.rooms[room] = true
	c.mu.Unlock()
}

// push queues a frame without blocking. A full buffer drops the frame.
func (c *Client) push(frame []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- frame:
		return true
	default:
		c.logger.Warn("send buffer full, dropping notification")
		return false
	}
}

func (c *Client) handle(frame Frame) {
	switch frame.Event {
	case EventJoin:
		var userID string
		if err := json.Unmarshal(frame.Data, &userID); err != nil || strings.TrimSpace(userID) == "" {
			c.logger.WithError(err).Warn("join without a user id")
			return
		}
		c.identify(userID)
		c.logger.WithField("user_id", userID).Info("connection identified")
	case EventJoinAdmin:
		c.join(RoomAdmin)
		c.logger.Debug("joined admin room")
	case EventJoinUser:
		c.join(RoomUser)
		c.logger.Debug("joined user room")
	case EventJoinAll:
		c.join(RoomAll)
		c.logger.Debug("joined all room")
	default:
		c.logger.WithField("event", frame.Event).Debug("ignoring unknown event")
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	conf := c.hub.config
	c.conn.SetReadLimit(conf.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(conf.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(conf.PongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.WithError(err).Warn("connection closed unexpectedly")
			}
			return
		}

		var frame Frame
		if err := json.Unmarshal(message, &frame); err != nil {
			c.logger.WithError(err).Debug("ignoring malformed frame")
			continue
		}
		c.handle(frame)
	}
}

func (c *Client) writePump() {
	conf := c.hub.config
	ticker := time.NewTicker(conf.pingPeriod())
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(conf.WriteWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(conf.WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.WithError(err).Debug("write failed")
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(conf.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

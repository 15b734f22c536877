package realtime

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/TestingSDK2/produco-backend/model"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func joinFrame(event, data string) Frame {
	if data == "" {
		return Frame{Event: event}
	}
	raw, _ := json.Marshal(data)
	return Frame{Event: event, Data: raw}
}

func addClient(h *Hub, frames ...Frame) *Client {
	c := newClient(h, nil, 4)
	h.register(c)
	for _, f := range frames {
		c.handle(f)
	}
	return c
}

func pending(c *Client) int {
	return len(c.send)
}

func testNotification() *model.Notification {
	return &model.Notification{
		ID:      primitive.NewObjectID(),
		Type:    model.NotificationSystem,
		Message: "hello",
	}
}

func TestDeliverAll(t *testing.T) {
	h := NewHub(nil)
	anon := addClient(h)
	alice := addClient(h, joinFrame(EventJoin, "alice"))
	bob := addClient(h, joinFrame(EventJoin, "bob"), joinFrame(EventJoinAll, ""))

	pushed := h.Deliver(model.RoleAll, testNotification(), "alice")
	assert.Equal(t, 2, pushed)
	assert.Equal(t, 1, pending(anon))
	assert.Equal(t, 0, pending(alice))
	assert.Equal(t, 1, pending(bob))
}

func TestDeliverRoleRoom(t *testing.T) {
	h := NewHub(nil)
	admin1 := addClient(h, joinFrame(EventJoin, "admin1"), joinFrame(EventJoinAdmin, ""))
	admin2 := addClient(h, joinFrame(EventJoin, "admin2"), joinFrame(EventJoinAdmin, ""))
	anonAdmin := addClient(h, joinFrame(EventJoinAdmin, ""))
	user := addClient(h, joinFrame(EventJoin, "u1"), joinFrame(EventJoinUser, ""))

	pushed := h.Deliver(model.RoleAdmin, testNotification(), "admin1")
	assert.Equal(t, 2, pushed)
	assert.Equal(t, 0, pending(admin1))
	assert.Equal(t, 1, pending(admin2))
	assert.Equal(t, 1, pending(anonAdmin))
	assert.Equal(t, 0, pending(user))

	pushed = h.Deliver(model.RoleUser, testNotification(), "")
	assert.Equal(t, 1, pushed)
	assert.Equal(t, 1, pending(user))
}

func TestDeliverPersonal(t *testing.T) {
	h := NewHub(nil)
	anon := addClient(h)
	tab1 := addClient(h, joinFrame(EventJoin, "bob"))
	tab2 := addClient(h, joinFrame(EventJoin, "bob"))
	alice := addClient(h, joinFrame(EventJoin, "alice"))

	pushed := h.Deliver("bob", testNotification(), "alice")
	assert.Equal(t, 2, pushed)
	assert.Equal(t, 1, pending(tab1))
	assert.Equal(t, 1, pending(tab2))
	assert.Equal(t, 0, pending(alice))
	assert.Equal(t, 0, pending(anon))
}

func TestDeliverSelfExcluded(t *testing.T) {
	h := NewHub(nil)
	admin1 := addClient(h, joinFrame(EventJoin, "admin1"), joinFrame(EventJoinAdmin, ""))

	pushed := h.Deliver("admin1", testNotification(), "admin1")
	assert.Zero(t, pushed)
	assert.Zero(t, pending(admin1))
}

func TestDeliverDropsWhenBufferFull(t *testing.T) {
	h := NewHub(nil)
	c := addClient(h, joinFrame(EventJoin, "bob"))

	for i := 0; i < cap(c.send); i++ {
		require.Equal(t, 1, h.Deliver("bob", testNotification(), ""))
	}
	assert.Zero(t, h.Deliver("bob", testNotification(), ""))
	assert.Equal(t, cap(c.send), pending(c))
}

func TestIdentifyReplacesPreviousUser(t *testing.T) {
	h := NewHub(nil)
	c := addClient(h, joinFrame(EventJoin, "first"), joinFrame(EventJoin, "second"))

	assert.Equal(t, "second", c.UserID())
	assert.False(t, c.InRoom("first"))
	assert.Zero(t, h.Deliver("first", testNotification(), ""))
	assert.Equal(t, 1, h.Deliver("second", testNotification(), ""))
}

func TestJoinIgnoresEmptyOrMalformedID(t *testing.T) {
	h := NewHub(nil)
	c := addClient(h, joinFrame(EventJoin, "  "), Frame{Event: EventJoin, Data: json.RawMessage(`{"id":1}`)})

	assert.Empty(t, c.UserID())
	assert.Zero(t, h.Deliver("", testNotification(), ""))
}

func TestUnregisterStopsDelivery(t *testing.T) {
	h := NewHub(nil)
	c := addClient(h, joinFrame(EventJoin, "bob"))
	require.Equal(t, 1, h.Count())

	h.unregister(c)
	assert.Zero(t, h.Count())
	assert.Zero(t, h.Deliver(model.RoleAll, testNotification(), ""))
}

func TestWebsocketEndToEnd(t *testing.T) {
	h := NewHub(nil)
	server := httptest.NewServer(h)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]string{"event": EventJoin, "data": "bob"}))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	n := testNotification()
	require.Eventually(t, func() bool {
		return h.Deliver("bob", n, "") == 1
	}, 2*time.Second, 10*time.Millisecond)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame struct {
		Event string             `json:"event"`
		Data  model.Notification `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, EventNewNotification, frame.Event)
	assert.Equal(t, n.ID, frame.Data.ID)
	assert.Equal(t, "hello", frame.Data.Message)

	conn.Close()
	assert.Eventually(t, func() bool { return h.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

package realtime

import (
	"encoding/json"
)

// client to server events
const (
	EventJoin      = "join"
	EventJoinAdmin = "joinAdmin"
	EventJoinAll   = "joinAll"
	EventJoinUser  = "joinUser"
)

// EventNewNotification server to client push of a stored notification
const EventNewNotification = "newNotification"

// room names
const (
	RoomAdmin = "admin"
	RoomUser  = "user"
	RoomAll   = "all"
)

// Frame envelope of every websocket message
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func encodeFrame(event string, data interface{}) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Frame{Event: event, Data: payload})
}

package notification

import (
	"github.com/TestingSDK2/produco-backend/model"
)

// DeliveryChannel pushes a stored notification to open client connections.
// target is "all", a role group, or a literal user id. exclude names a user
// id that must not receive the push. It returns the number of pushes issued.
type DeliveryChannel interface {
	Deliver(target string, notification *model.Notification, exclude string) int
}

// nopChannel drops every delivery until a real channel is attached
type nopChannel struct{}

func (nopChannel) Deliver(string, *model.Notification, string) int { return 0 }

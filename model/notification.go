package model

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CollectionNotification mongo collection holding notifications
const CollectionNotification = "notifications"

// notification types
const (
	NotificationLike        = "like"
	NotificationNewProduct  = "new_product"
	NotificationBlock       = "block"
	NotificationApprove     = "approve"
	NotificationNewUser     = "new_user"
	NotificationMessage     = "message"
	NotificationOrderStatus = "order_status"
	NotificationViews       = "views"
	NotificationSystem      = "system"
)

// audience roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleAll   = "all"
)

// NotificationTypes lists every accepted notification type
var NotificationTypes = []string{
	NotificationLike,
	NotificationNewProduct,
	NotificationBlock,
	NotificationApprove,
	NotificationNewUser,
	NotificationMessage,
	NotificationOrderStatus,
	NotificationViews,
	NotificationSystem,
}

// IsNotificationType reports whether t belongs to the closed set of types
func IsNotificationType(t string) bool {
	for _, v := range NotificationTypes {
		if v == t {
			return true
		}
	}
	return false
}

// IsTargetRole reports whether role is a valid audience group
func IsTargetRole(role string) bool {
	return role == RoleUser || role == RoleAdmin || role == RoleAll
}

// Notification durable notification record
type Notification struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	UserID     string              `bson:"userId,omitempty" json:"userId,omitempty"`
	TargetRole string              `bson:"targetRole,omitempty" json:"targetRole,omitempty"`
	Personal   bool                `bson:"personal,omitempty" json:"personal,omitempty"`
	Type       string              `bson:"type" json:"type"`
	Message    string              `bson:"message" json:"message"`
	Data       Payload             `bson:"data,omitempty" json:"data,omitempty"`
	Link       string              `bson:"link" json:"link"`
	IsRead     bool                `bson:"isRead" json:"isRead"`
	Product    *primitive.ObjectID `bson:"product,omitempty" json:"product,omitempty"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// notificationDocument mirrors Notification with the payload left undecoded
type notificationDocument struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty"`
	UserID     string              `bson:"userId,omitempty"`
	TargetRole string              `bson:"targetRole,omitempty"`
	Personal   bool                `bson:"personal,omitempty"`
	Type       string              `bson:"type"`
	Message    string              `bson:"message"`
	Data       bson.RawValue       `bson:"data,omitempty"`
	Link       string              `bson:"link"`
	IsRead     bool                `bson:"isRead"`
	Product    *primitive.ObjectID `bson:"product,omitempty"`
	CreatedAt  time.Time           `bson:"createdAt"`
	UpdatedAt  time.Time           `bson:"updatedAt"`
}

// UnmarshalBSON decodes the payload into the variant matching the notification type
func (n *Notification) UnmarshalBSON(data []byte) error {
	var doc notificationDocument
	if err := bson.Unmarshal(data, &doc); err != nil {
		return err
	}

	*n = Notification{
		ID:         doc.ID,
		UserID:     doc.UserID,
		TargetRole: doc.TargetRole,
		Personal:   doc.Personal,
		Type:       doc.Type,
		Message:    doc.Message,
		Link:       doc.Link,
		IsRead:     doc.IsRead,
		Product:    doc.Product,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}

	if doc.Data.Type != 0 && doc.Data.Type != bson.TypeNull {
		payload := NewPayload(doc.Type)
		if err := doc.Data.Unmarshal(payload); err != nil {
			return err
		}
		n.Data = payload
	}
	return nil
}

// UnmarshalJSON decodes the payload into the variant matching the notification type
func (n *Notification) UnmarshalJSON(data []byte) error {
	type plain Notification
	aux := struct {
		*plain
		Data json.RawMessage `json:"data,omitempty"`
	}{plain: (*plain)(n)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	payload, err := DecodePayload(n.Type, aux.Data)
	if err != nil {
		return err
	}
	n.Data = payload
	return nil
}

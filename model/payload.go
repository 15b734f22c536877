package model

import (
	"encoding/json"
)

// Payload typed context attached to a notification, keyed by notification type
type Payload interface {
	NotificationType() string
}

// LikeData someone liked a product
type LikeData struct {
	ProductID string `bson:"productId" json:"productId"`
	LikerID   string `bson:"likerId" json:"likerId"`
}

// NewProductData a product became visible on the marketplace
type NewProductData struct {
	ProductID string `bson:"productId" json:"productId"`
	OwnerID   string `bson:"ownerId,omitempty" json:"ownerId,omitempty"`
}

// BlockData a product was blocked by moderation
type BlockData struct {
	ProductID string `bson:"productId" json:"productId"`
}

// ApproveData a product was approved by moderation
type ApproveData struct {
	ProductID string `bson:"productId" json:"productId"`
}

// NewUserData an account was registered
type NewUserData struct {
	UserID string `bson:"userId" json:"userId"`
}

// MessageData a direct message was received
type MessageData struct {
	SenderID string `bson:"senderId" json:"senderId"`
}

// OrderStatusData an order was placed or changed
type OrderStatusData struct {
	OrderID   string `bson:"orderId" json:"orderId"`
	ProductID string `bson:"productId" json:"productId"`
	BuyerID   string `bson:"buyerId,omitempty" json:"buyerId,omitempty"`
}

// ViewsData a product crossed a view milestone
type ViewsData struct {
	ProductID string `bson:"productId" json:"productId"`
	Views     int    `bson:"views" json:"views"`
}

// SystemData free-form details of a platform announcement
type SystemData struct {
	Details map[string]interface{} `bson:"details,omitempty" json:"details,omitempty"`
}

func (*LikeData) NotificationType() string        { return NotificationLike }
func (*NewProductData) NotificationType() string  { return NotificationNewProduct }
func (*BlockData) NotificationType() string       { return NotificationBlock }
func (*ApproveData) NotificationType() string     { return NotificationApprove }
func (*NewUserData) NotificationType() string     { return NotificationNewUser }
func (*MessageData) NotificationType() string     { return NotificationMessage }
func (*OrderStatusData) NotificationType() string { return NotificationOrderStatus }
func (*ViewsData) NotificationType() string       { return NotificationViews }
func (*SystemData) NotificationType() string      { return NotificationSystem }

// NewPayload returns an empty payload for the given notification type.
// Unknown types fall back to SystemData.
func NewPayload(notificationType string) Payload {
	switch notificationType {
	case NotificationLike:
		return &LikeData{}
	case NotificationNewProduct:
		return &NewProductData{}
	case NotificationBlock:
		return &BlockData{}
	case NotificationApprove:
		return &ApproveData{}
	case NotificationNewUser:
		return &NewUserData{}
	case NotificationMessage:
		return &MessageData{}
	case NotificationOrderStatus:
		return &OrderStatusData{}
	case NotificationViews:
		return &ViewsData{}
	default:
		return &SystemData{}
	}
}

// DecodePayload decodes raw JSON into the payload variant for notificationType.
// An empty or null document yields a nil payload.
func DecodePayload(notificationType string, raw json.RawMessage) (Payload, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	payload := NewPayload(notificationType)
	if sys, ok := payload.(*SystemData); ok {
		details := map[string]interface{}{}
		if err := json.Unmarshal(raw, &details); err != nil {
			return nil, err
		}
		if inner, ok := details["details"].(map[string]interface{}); ok && len(details) == 1 {
			details = inner
		}
		sys.Details = details
		return sys, nil
	}

	if err := json.Unmarshal(raw, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CollectionOrder mongo collection holding orders
const CollectionOrder = "orders"

// GuestInfo contact details of a buyer without an account
type GuestInfo struct {
	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone" json:"phone"`
}

// Order purchase intent for a product
type Order struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Product   primitive.ObjectID  `bson:"product" json:"product"`
	Seller    primitive.ObjectID  `bson:"seller" json:"seller"`
	Buyer     *primitive.ObjectID `bson:"buyer,omitempty" json:"buyer,omitempty"`
	GuestInfo *GuestInfo          `bson:"guestInfo,omitempty" json:"guestInfo,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// OrderProductSummary product fields shown in a seller's order list
type OrderProductSummary struct {
	ID    string  `json:"_id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
}

// SellerOrder order enriched for the seller's dashboard
type SellerOrder struct {
	ID        string               `json:"_id"`
	Product   *OrderProductSummary `json:"product"`
	Seller    string               `json:"seller"`
	Buyer     *UserSummary         `json:"buyer,omitempty"`
	GuestInfo *GuestInfo           `json:"guestInfo,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
}

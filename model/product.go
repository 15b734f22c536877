package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CollectionProduct mongo collection holding listings
const CollectionProduct = "products"

// moderation statuses
const (
	ProductStatusPending  = "pending"
	ProductStatusApproved = "approved"
	ProductStatusRemoved  = "removed"
)

// listing defaults
const (
	DefaultCategory = "Other"
	DefaultStock    = "Available"
)

// Product marketplace listing
type Product struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name        string               `bson:"name" json:"name"`
	Price       float64              `bson:"price" json:"price"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	Image       string               `bson:"image,omitempty" json:"image,omitempty"`
	Category    string               `bson:"category" json:"category"`
	Stock       string               `bson:"stock" json:"stock"`
	Tags        []string             `bson:"tags,omitempty" json:"tags,omitempty"`
	SKU         string               `bson:"sku,omitempty" json:"sku,omitempty"`
	User        primitive.ObjectID   `bson:"user" json:"user"`
	Status      string               `bson:"status" json:"status"`
	Likes       []primitive.ObjectID `bson:"likes" json:"-"`
	GuestLikes  []string             `bson:"guestLikes" json:"guestLikes"`
	Views       int                  `bson:"views" json:"views"`
	OrdersCount int                  `bson:"ordersCount" json:"ordersCount"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// LikedBy reports whether the account id is among the likes
func (p *Product) LikedBy(userID primitive.ObjectID) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// ProductView listing enriched with author and liker summaries
type ProductView struct {
	Product
	Author UserSummary   `json:"author"`
	Likes  []UserSummary `json:"likes"`
}

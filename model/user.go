package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CollectionUser mongo collection holding accounts
const CollectionUser = "users"

// account statuses
const (
	UserStatusActive  = "active"
	UserStatusBlocked = "blocked"
	UserStatusDeleted = "deleted"
)

// User marketplace account
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      string             `bson:"role" json:"role"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsAdmin reports whether the account has the admin role
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// IsDisabled reports whether the account may no longer sign in
func (u *User) IsDisabled() bool {
	return u.Status == UserStatusBlocked || u.Status == UserStatusDeleted
}

// UserSummary public view of an account embedded in other resources
type UserSummary struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone"`
}

// Summary returns the public view of the account
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Phone: u.Phone,
	}
}

package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CollectionTransaction mongo collection holding ledger entries
const CollectionTransaction = "transactions"

// transaction kinds
const (
	TransactionPayment = "payment"
	TransactionSale    = "sale"
)

// Transaction ledger entry
type Transaction struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`
	Type   string             `bson:"type" json:"type"`
	Amount float64            `bson:"amount" json:"amount"`
	Date   time.Time          `bson:"date" json:"date"`
}

package transaction

import (
	"context"
	"time"

	"github.com/TestingSDK2/produco-backend/model"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Input ledger entry form
type Input struct {
	UserID string     `json:"userId"`
	Type   string     `json:"type"`
	Amount float64    `json:"amount"`
	Date   *time.Time `json:"date"`
}

// Service - defines transaction service
type Service interface {
	GetTransactions(ctx context.Context) ([]model.Transaction, error)
	CreateTransaction(ctx context.Context, input Input) (*model.Transaction, error)
}

type service struct {
	repo Repository
}

// NewService - creates new transaction service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetTransactions(ctx context.Context) ([]model.Transaction, error) {
	txs, err := s.repo.FindAll(ctx)
	return txs, errors.Wrap(err, "unable to list transactions")
}

func (s *service) CreateTransaction(ctx context.Context, input Input) (*model.Transaction, error) {
	userID, err := primitive.ObjectIDFromHex(input.UserID)
	if err != nil {
		return nil, &model.ValidationError{Message: "invalid userId"}
	}
	if input.Type != model.TransactionPayment && input.Type != model.TransactionSale {
		return nil, &model.ValidationError{Message: "type must be payment or sale"}
	}
	if input.Amount <= 0 {
		return nil, &model.ValidationError{Message: "amount must be positive"}
	}

	tx := &model.Transaction{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Type:   input.Type,
		Amount: input.Amount,
		Date:   time.Now().UTC(),
	}
	if input.Date != nil {
		tx.Date = input.Date.UTC()
	}

	if err := s.repo.Insert(ctx, tx); err != nil {
		return nil, errors.Wrap(err, "unable to create transaction")
	}
	return tx, nil
}

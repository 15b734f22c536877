package transaction

import (
	"context"

	"github.com/TestingSDK2/produco-backend/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository persistence of ledger entries
type Repository interface {
	Insert(ctx context.Context, tx *model.Transaction) error
	FindAll(ctx context.Context) ([]model.Transaction, error)
}

type mongoRepository struct {
	collection *mongo.Collection
}

// NewRepository creates the mongo backed repository
func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{collection: db.Collection(model.CollectionTransaction)}
}

func (r *mongoRepository) Insert(ctx context.Context, tx *model.Transaction) error {
	_, err := r.collection.InsertOne(ctx, tx)
	return err
}

func (r *mongoRepository) FindAll(ctx context.Context) ([]model.Transaction, error) {
	cur, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	txs := []model.Transaction{}
	if err := cur.All(ctx, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

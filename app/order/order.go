package order

import (
	"context"

	"github.com/TestingSDK2/produco-backend/model"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository persistence of orders
type Repository interface {
	Insert(ctx context.Context, order *model.Order) error
	FindBySeller(ctx context.Context, seller primitive.ObjectID) ([]model.Order, error)
}

type mongoRepository struct {
	collection *mongo.Collection
}

// NewRepository creates the mongo backed repository and its indexes
func NewRepository(db *mongo.Database) Repository {
	repo := &mongoRepository{collection: db.Collection(model.CollectionOrder)}
	_, err := repo.collection.Indexes().CreateOne(context.TODO(), mongo.IndexModel{
		Keys:    bson.D{{Key: "seller", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("seller_created_index"),
	})
	if err != nil {
		logrus.WithError(err).Error("unable to register order indexes")
	}
	return repo
}

func (r *mongoRepository) Insert(ctx context.Context, order *model.Order) error {
	_, err := r.collection.InsertOne(ctx, order)
	return err
}

func (r *mongoRepository) FindBySeller(ctx context.Context, seller primitive.ObjectID) ([]model.Order, error) {
	cur, err := r.collection.Find(ctx, bson.M{"seller": seller}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	orders := []model.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

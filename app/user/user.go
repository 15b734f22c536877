package user

import (
	"context"
	"time"

	"github.com/TestingSDK2/produco-backend/model"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository persistence of accounts
type Repository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	FindByRole(ctx context.Context, role string) ([]model.User, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*model.User, error)
}

type mongoRepository struct {
	collection *mongo.Collection
}

// NewRepository creates the mongo backed repository and its indexes
func NewRepository(db *mongo.Database) Repository {
	repo := &mongoRepository{collection: db.Collection(model.CollectionUser)}
	_, err := repo.collection.Indexes().CreateOne(context.TODO(), mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email_unique").SetUnique(true),
	})
	if err != nil {
		logrus.WithError(err).Error("unable to register user indexes")
	}
	return repo
}

func (r *mongoRepository) Create(ctx context.Context, user *model.User) error {
	_, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return &model.ValidationError{Message: "user already exists"}
	}
	return err
}

func (r *mongoRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	user := &model.User{}
	err := r.collection.FindOne(ctx, filter).Decode(user)
	if err == mongo.ErrNoDocuments {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *mongoRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoRepository) find(ctx context.Context, filter bson.M) ([]model.User, error) {
	cur, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	users := []model.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *mongoRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.User, error) {
	if len(ids) == 0 {
		return []model.User{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *mongoRepository) FindAll(ctx context.Context) ([]model.User, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoRepository) FindByRole(ctx context.Context, role string) ([]model.User, error) {
	return r.find(ctx, bson.M{"role": role})
}

func (r *mongoRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*model.User, error) {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	user := &model.User{}
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(user)
	if err == mongo.ErrNoDocuments {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

package notification

import (
	"context"
	"time"

	"github.com/TestingSDK2/produco-backend/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository persistence of notification records
type Repository interface {
	Insert(ctx context.Context, notification *model.Notification) error
	FindForUser(ctx context.Context, userID, role string) ([]model.Notification, error)
	FindAll(ctx context.Context) ([]model.Notification, error)
	CountUnread(ctx context.Context, userID, role string) (int64, error)
	MarkRead(ctx context.Context, id primitive.ObjectID) (*model.Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoRepository struct {
	collection *mongo.Collection
}

// NewRepository creates the mongo backed repository and its indexes
func NewRepository(db *mongo.Database) Repository {
	repo := &mongoRepository{collection: db.Collection(model.CollectionNotification)}
	if err := repo.registerIndexes(context.TODO()); err != nil {
		logrus.WithError(err).Error("unable to register notification indexes")
	}
	return repo
}

func (r *mongoRepository) registerIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("user_created_index"),
		},
		{
			Keys:    bson.D{{Key: "targetRole", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("role_created_index"),
		},
	}
	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}

// audienceFilter matches the user's own records, broadcasts to everyone and
// non-personal records addressed to the role group.
func audienceFilter(userID, role string) bson.M {
	or := bson.A{
		bson.M{"targetRole": model.RoleAll},
	}
	if userID != "" {
		or = append(or, bson.M{"userId": userID})
	}
	if role != "" && role != model.RoleAll {
		or = append(or, bson.M{"targetRole": role, "personal": bson.M{"$ne": true}})
	}
	return bson.M{"$or": or}
}

func (r *mongoRepository) Insert(ctx context.Context, notification *model.Notification) error {
	_, err := r.collection.InsertOne(ctx, notification)
	return err
}

func (r *mongoRepository) find(ctx context.Context, filter interface{}) ([]model.Notification, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, errors.Wrap(err, "unable to query notifications")
	}

	notifications := []model.Notification{}
	if err := cur.All(ctx, &notifications); err != nil {
		return nil, errors.Wrap(err, "unable to decode notifications")
	}
	return notifications, nil
}

func (r *mongoRepository) FindForUser(ctx context.Context, userID, role string) ([]model.Notification, error) {
	return r.find(ctx, audienceFilter(userID, role))
}

func (r *mongoRepository) FindAll(ctx context.Context) ([]model.Notification, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoRepository) CountUnread(ctx context.Context, userID, role string) (int64, error) {
	filter := audienceFilter(userID, role)
	filter["isRead"] = false
	return r.collection.CountDocuments(ctx, filter)
}

func (r *mongoRepository) MarkRead(ctx context.Context, id primitive.ObjectID) (*model.Notification, error) {
	update := bson.M{"$set": bson.M{"isRead": true, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	notification := &model.Notification{}
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(notification)
	if err == mongo.ErrNoDocuments {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return notification, nil
}

func (r *mongoRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	filter := bson.M{"userId": userID, "isRead": false}
	update := bson.M{"$set": bson.M{"isRead": true, "updatedAt": time.Now().UTC()}}
	res, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

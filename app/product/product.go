package product

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

// Filter narrows a product listing
type Filter struct {
	Owner    *primitive.ObjectID
	Category string
	Status   string
}

// Repository persistence of listings
type Repository interface {
	Insert(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error)
	Find(ctx context.Context, filter Filter) ([]model.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*model.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	IncrementViews(ctx context.Context, id primitive.ObjectID) (*model.Product, error)
	IncrementOrders(ctx context.Context, id primitive.ObjectID) error
	AddLike(ctx context.Context, id, userID primitive.ObjectID) (bool, error)
	RemoveLike(ctx context.Context, id, userID primitive.ObjectID) error
	AddGuestLike(ctx context.Context, id primitive.ObjectID, guestKey string) error
	RemoveGuestLike(ctx context.Context, id primitive.ObjectID, guestKey string) error
}

type mongoRepository struct {
	collection *mongo.Collection
}

// NewRepository creates the mongo backed repository and its indexes
func NewRepository(db *mongo.Database) Repository {
	repo := &mongoRepository{collection: db.Collection(model.CollectionProduct)}
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}},
			Options: options.Index().SetName("owner_index"),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("category_created_index"),
		},
	}
	if _, err := repo.collection.Indexes().CreateMany(context.TODO(), indexes); err != nil {
		logrus.WithError(err).Error("unable to register product indexes")
	}
	return repo
}

func (r *mongoRepository) Insert(ctx context.Context, product *model.Product) error {
	_, err := r.collection.InsertOne(ctx, product)
	return err
}

func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	product := &model.Product{}
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(product)
	if err == mongo.ErrNoDocuments {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *mongoRepository) Find(ctx context.Context, filter Filter) ([]model.Product, error) {
	query := bson.M{}
	if filter.Owner != nil {
		query["user"] = *filter.Owner
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	cur, err := r.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	products := []model.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Update sets only the given fields and returns the stored document. Likes,
// views and order counters written concurrently are left untouched.
func (r *mongoRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*model.Product, error) {
	fields := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range set {
		fields[k] = v
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	product := &model.Product{}
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(product)
	if err == mongo.ErrNoDocuments {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return product, nil
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

func (r *mongoRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	update := bson.M{"$inc": bson.M{"views": 1}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	product := &model.Product{}
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(product)
	if err == mongo.ErrNoDocuments {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *mongoRepository) IncrementOrders(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"ordersCount": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *mongoRepository) update(ctx context.Context, id primitive.ObjectID, update bson.M) (*mongo.UpdateResult, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, model.ErrNotFound
	}
	return res, nil
}

// AddLike reports whether the like was new
func (r *mongoRepository) AddLike(ctx context.Context, id, userID primitive.ObjectID) (bool, error) {
	res, err := r.update(ctx, id, bson.M{"$addToSet": bson.M{"likes": userID}})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *mongoRepository) RemoveLike(ctx context.Context, id, userID primitive.ObjectID) error {
	_, err := r.update(ctx, id, bson.M{"$pull": bson.M{"likes": userID}})
	return err
}

func (r *mongoRepository) AddGuestLike(ctx context.Context, id primitive.ObjectID, guestKey string) error {
	_, err := r.update(ctx, id, bson.M{"$addToSet": bson.M{"guestLikes": guestKey}})
	return err
}

func (r *mongoRepository) RemoveGuestLike(ctx context.Context, id primitive.ObjectID, guestKey string) error {
	_, err := r.update(ctx, id, bson.M{"$pull": bson.M{"guestLikes": guestKey}})
	return err
}

package product

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/TestingSDK2/produco-backend/app/config"
	"github.com/TestingSDK2/produco-backend/app/notification"
	"github.com/TestingSDK2/produco-backend/model"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserDirectory resolves account summaries for authors and likers
type UserDirectory interface {
	FetchUsers(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.User, error)
}

// Input editable listing fields. Zero values leave a field unchanged on update.
type Input struct {
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Stock       string   `json:"stock"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	SKU         string   `json:"sku"`
}

// ListQuery public listing parameters
type ListQuery struct {
	Search   string
	Category string
	Status   string
}

// Service - defines product service
type Service interface {
	ListProducts(ctx context.Context, q ListQuery) ([]model.ProductView, error)
	ListUserProducts(ctx context.Context, userID string) ([]model.ProductView, error)
	GetProduct(ctx context.Context, id string) (*model.ProductView, error)
	FindProduct(ctx context.Context, id string) (*model.Product, error)
	CreateProduct(ctx context.Context, actor *model.User, input Input) (*model.ProductView, error)
	UpdateProduct(ctx context.Context, actor *model.User, id string, input Input) (*model.ProductView, error)
	PublishProduct(ctx context.Context, actor *model.User, id string, input Input) (*model.ProductView, error)
	DeleteProduct(ctx context.Context, actor *model.User, id string) error
	BlockProduct(ctx context.Context, id string) (*model.ProductView, error)
	ApproveProduct(ctx context.Context, id string) (*model.ProductView, error)
	LikeProduct(ctx context.Context, actor *model.User, guestKey, id string) (*model.ProductView, error)
	UnlikeProduct(ctx context.Context, actor *model.User, guestKey, id string) (*model.ProductView, error)
	ViewProduct(ctx context.Context, id string) (*model.ProductView, error)
	RecordOrder(ctx context.Context, id primitive.ObjectID) error
}

type service struct {
	config        *config.Config
	repo          Repository
	users         UserDirectory
	notifications notification.Service
}

// NewService - creates new product service
func NewService(repo Repository, users UserDirectory, notifications notification.Service, conf *config.Config) Service {
	return &service{
		config:        conf,
		repo:          repo,
		users:         users,
		notifications: notifications,
	}
}

func (s *service) load(ctx context.Context, id string) (*model.Product, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.NotFound("product not found")
	}
	product, err := s.repo.FindByID(ctx, productID)
	if errors.Cause(err) == model.ErrNotFound {
		return nil, model.NotFound("product not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "unable to load product")
	}
	return product, nil
}

func (s *service) ListProducts(ctx context.Context, q ListQuery) ([]model.ProductView, error) {
	products, err := s.repo.Find(ctx, Filter{Category: q.Category, Status: q.Status})
	if err != nil {
		return nil, errors.Wrap(err, "unable to list products")
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		products = searchProducts(products, search)
	}
	return s.views(ctx, products)
}

// searchProducts keeps listings whose name fuzzily contains search, closest first
func searchProducts(products []model.Product, search string) []model.Product {
	type ranked struct {
		product  model.Product
		distance int
	}

	matches := []ranked{}
	for _, p := range products {
		distance := fuzzy.RankMatchNormalizedFold(search, p.Name)
		if distance < 0 {
			continue
		}
		matches = append(matches, ranked{product: p, distance: distance})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].distance < matches[j].distance })

	out := make([]model.Product, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.product)
	}
	return out
}

func (s *service) ListUserProducts(ctx context.Context, userID string) ([]model.ProductView, error) {
	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, &model.ValidationError{Message: "invalid user id"}
	}
	products, err := s.repo.Find(ctx, Filter{Owner: &owner})
	if err != nil {
		return nil, errors.Wrap(err, "unable to list products")
	}
	return s.views(ctx, products)
}

func (s *service) GetProduct(ctx context.Context, id string) (*model.ProductView, error) {
	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, product)
}

func (s *service) FindProduct(ctx context.Context, id string) (*model.Product, error) {
	return s.load(ctx, id)
}

func (s *service) CreateProduct(ctx context.Context, actor *model.User, input Input) (*model.ProductView, error) {
	if actor == nil {
		return nil, model.Unauthorized("not authorized")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, &model.ValidationError{Message: "name is required"}
	}
	if input.Price < 0 {
		return nil, &model.ValidationError{Message: "price cannot be negative"}
	}

	now := time.Now().UTC()
	product := &model.Product{
		ID:         primitive.NewObjectID(),
		User:       actor.ID,
		Status:     model.ProductStatusApproved,
		Category:   model.DefaultCategory,
		Stock:      model.DefaultStock,
		Likes:      []primitive.ObjectID{},
		GuestLikes: []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	applyInput(product, input)

	if err := s.repo.Insert(ctx, product); err != nil {
		return nil, errors.Wrap(err, "unable to create product")
	}

	s.notify(ctx, model.NotificationNewProduct,
		fmt.Sprintf("%s published a new product \"%s\"", actor.Name, product.Name),
		notification.Options{
			TargetRole:    model.RoleAdmin,
			ExcludeUserID: actor.ID.Hex(),
			ProductID:     product.ID.Hex(),
			Data:          &model.NewProductData{ProductID: product.ID.Hex(), OwnerID: actor.ID.Hex()},
		})

	return s.view(ctx, product)
}

func applyInput(product *model.Product, input Input) {
	if name := strings.TrimSpace(input.Name); name != "" {
		product.Name = name
	}
	if input.Price > 0 {
		product.Price = input.Price
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.Category != "" {
		product.Category = input.Category
	}
	if input.Stock != "" {
		product.Stock = input.Stock
	}
	if input.Image != "" {
		product.Image = input.Image
	}
	if input.Tags != nil {
		product.Tags = input.Tags
	}
	if input.SKU != "" {
		product.SKU = input.SKU
	}
}

// inputChanges lists the document fields an edit form sets
func inputChanges(input Input) bson.M {
	set := bson.M{}
	if name := strings.TrimSpace(input.Name); name != "" {
		set["name"] = name
	}
	if input.Price > 0 {
		set["price"] = input.Price
	}
	if input.Description != "" {
		set["description"] = input.Description
	}
	if input.Category != "" {
		set["category"] = input.Category
	}
	if input.Stock != "" {
		set["stock"] = input.Stock
	}
	if input.Image != "" {
		set["image"] = input.Image
	}
	if input.Tags != nil {
		set["tags"] = input.Tags
	}
	if input.SKU != "" {
		set["sku"] = input.SKU
	}
	return set
}

func (s *service) save(ctx context.Context, id primitive.ObjectID, set bson.M, action string) (*model.Product, error) {
	product, err := s.repo.Update(ctx, id, set)
	if errors.Cause(err) == model.ErrNotFound {
		return nil, model.NotFound("product not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "unable to "+action+" product")
	}
	return product, nil
}

func (s *service) UpdateProduct(ctx context.Context, actor *model.User, id string, input Input) (*model.ProductView, error) {
	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor == nil || product.User != actor.ID {
		return nil, model.Forbidden("action not allowed")
	}
	if input.Price < 0 {
		return nil, &model.ValidationError{Message: "price cannot be negative"}
	}

	product, err = s.save(ctx, product.ID, inputChanges(input), "update")
	if err != nil {
		return nil, err
	}
	return s.view(ctx, product)
}

func (s *service) PublishProduct(ctx context.Context, actor *model.User, id string, input Input) (*model.ProductView, error) {
	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor == nil || (product.User != actor.ID && !actor.IsAdmin()) {
		return nil, model.Forbidden("access denied")
	}

	set := inputChanges(input)
	set["status"] = model.ProductStatusApproved
	product, err = s.save(ctx, product.ID, set, "publish")
	if err != nil {
		return nil, err
	}
	return s.view(ctx, product)
}

func (s *service) DeleteProduct(ctx context.Context, actor *model.User, id string) error {
	product, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if actor == nil || (product.User != actor.ID && !actor.IsAdmin()) {
		return model.Forbidden("access denied")
	}

	err = s.repo.Delete(ctx, product.ID)
	if errors.Cause(err) == model.ErrNotFound {
		return model.NotFound("product not found")
	}
	return err
}

func (s *service) BlockProduct(ctx context.Context, id string) (*model.ProductView, error) {
	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	product, err = s.save(ctx, product.ID, bson.M{"status": model.ProductStatusRemoved}, "block")
	if err != nil {
		return nil, err
	}

	s.notify(ctx, model.NotificationBlock,
		fmt.Sprintf("Your product \"%s\" has been blocked. Contact the administrator to learn more.", product.Name),
		notification.Options{
			UserID:    product.User.Hex(),
			ProductID: product.ID.Hex(),
			Data:      &model.BlockData{ProductID: product.ID.Hex()},
		})

	return s.view(ctx, product)
}

// ApproveProduct notifies the owner personally and announces the listing to
// everyone else.
func (s *service) ApproveProduct(ctx context.Context, id string) (*model.ProductView, error) {
	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	product, err = s.save(ctx, product.ID, bson.M{"status": model.ProductStatusApproved}, "approve")
	if err != nil {
		return nil, err
	}

	owner := product.User.Hex()
	s.notify(ctx, model.NotificationApprove,
		fmt.Sprintf("Good news! Your product \"%s\" is now approved and available.", product.Name),
		notification.Options{
			UserID:    owner,
			ProductID: product.ID.Hex(),
			Data:      &model.ApproveData{ProductID: product.ID.Hex()},
		})
	s.notify(ctx, model.NotificationNewProduct,
		fmt.Sprintf("New on the marketplace: \"%s\"", product.Name),
		notification.Options{
			TargetRole:    model.RoleAll,
			ExcludeUserID: owner,
			ProductID:     product.ID.Hex(),
			Data:          &model.NewProductData{ProductID: product.ID.Hex(), OwnerID: owner},
		})

	return s.view(ctx, product)
}

func (s *service) LikeProduct(ctx context.Context, actor *model.User, guestKey, id string) (*model.ProductView, error) {
	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor == nil {
		if err := s.repo.AddGuestLike(ctx, product.ID, guestKey); err != nil {
			return nil, errors.Wrap(err, "unable to like product")
		}
		return s.reload(ctx, product.ID)
	}

	added, err := s.repo.AddLike(ctx, product.ID, actor.ID)
	if err != nil {
		return nil, errors.Wrap(err, "unable to like product")
	}

	if added && product.User != actor.ID {
		s.notify(ctx, model.NotificationLike,
			fmt.Sprintf("%s liked your product \"%s\"", actor.Name, product.Name),
			notification.Options{
				UserID:        product.User.Hex(),
				ExcludeUserID: actor.ID.Hex(),
				ProductID:     product.ID.Hex(),
				Data:          &model.LikeData{ProductID: product.ID.Hex(), LikerID: actor.ID.Hex()},
			})
	}
	return s.reload(ctx, product.ID)
}

func (s *service) UnlikeProduct(ctx context.Context, actor *model.User, guestKey, id string) (*model.ProductView, error) {
	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor == nil {
		err = s.repo.RemoveGuestLike(ctx, product.ID, guestKey)
	} else {
		err = s.repo.RemoveLike(ctx, product.ID, actor.ID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "unable to unlike product")
	}
	return s.reload(ctx, product.ID)
}

func (s *service) ViewProduct(ctx context.Context, id string) (*model.ProductView, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.NotFound("product not found")
	}

	product, err := s.repo.IncrementViews(ctx, productID)
	if errors.Cause(err) == model.ErrNotFound {
		return nil, model.NotFound("product not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "unable to count view")
	}

	if milestone := s.config.ViewsMilestone; milestone > 0 && product.Views%milestone == 0 {
		s.notify(ctx, model.NotificationViews,
			fmt.Sprintf("Your product \"%s\" reached %d views", product.Name, product.Views),
			notification.Options{
				UserID:    product.User.Hex(),
				ProductID: product.ID.Hex(),
				Data:      &model.ViewsData{ProductID: product.ID.Hex(), Views: product.Views},
			})
	}
	return s.view(ctx, product)
}

func (s *service) RecordOrder(ctx context.Context, id primitive.ObjectID) error {
	err := s.repo.IncrementOrders(ctx, id)
	if errors.Cause(err) == model.ErrNotFound {
		return model.NotFound("product not found")
	}
	return err
}

func (s *service) reload(ctx context.Context, id primitive.ObjectID) (*model.ProductView, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "unable to reload product")
	}
	return s.view(ctx, product)
}

// notify creates a notification as a side effect of a product action. A failure
// is logged and never fails the action itself.
func (s *service) notify(ctx context.Context, notificationType, message string, opts notification.Options) {
	if _, err := s.notifications.CreateNotification(ctx, notificationType, message, opts); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"type":       notificationType,
			"product_id": opts.ProductID,
		}).Error("unable to create notification")
	}
}

func (s *service) view(ctx context.Context, product *model.Product) (*model.ProductView, error) {
	views, err := s.views(ctx, []model.Product{*product})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *service) views(ctx context.Context, products []model.Product) ([]model.ProductView, error) {
	seen := map[primitive.ObjectID]bool{}
	ids := []primitive.ObjectID{}
	collect := func(id primitive.ObjectID) {
		if !id.IsZero() && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, p := range products {
		collect(p.User)
		for _, like := range p.Likes {
			collect(like)
		}
	}

	users, err := s.users.FetchUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]model.ProductView, 0, len(products))
	for _, p := range products {
		v := model.ProductView{
			Product: p,
			Author:  model.UserSummary{Name: "Unknown user"},
			Likes:   []model.UserSummary{},
		}
		if author, ok := users[p.User]; ok {
			v.Author = author.Summary()
		}
		for _, like := range p.Likes {
			if liker, ok := users[like]; ok {
				v.Likes = append(v.Likes, liker.Summary())
			}
		}
		if v.Image == "" {
			v.Image = s.config.PlaceholderImage
		}
		if v.Category == "" {
			v.Category = model.DefaultCategory
		}
		if v.GuestLikes == nil {
			v.GuestLikes = []string{}
		}
		views = append(views, v)
	}
	return views, nil
}

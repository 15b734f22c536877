package order

import (
	"context"
	"fmt"
	"time"

	"github.com/TestingSDK2/produco-backend/app/notification"
	"github.com/TestingSDK2/produco-backend/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Products subset of the product service used when ordering
type Products interface {
	FindProduct(ctx context.Context, id string) (*model.Product, error)
	RecordOrder(ctx context.Context, id primitive.ObjectID) error
}

// Users resolves buyer details for the seller dashboard
type Users interface {
	FetchUsers(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.User, error)
}

// Input order form
type Input struct {
	ProductID string           `json:"productId"`
	GuestInfo *model.GuestInfo `json:"guestInfo"`
}

// Service - defines order service
type Service interface {
	CreateOrder(ctx context.Context, buyer *model.User, input Input) (*model.Order, error)
	GetSellerOrders(ctx context.Context, seller *model.User) ([]model.SellerOrder, error)
}

type service struct {
	repo          Repository
	products      Products
	users         Users
	notifications notification.Service
}

// NewService - creates new order service
func NewService(repo Repository, products Products, users Users, notifications notification.Service) Service {
	return &service{
		repo:          repo,
		products:      products,
		users:         users,
		notifications: notifications,
	}
}

func (s *service) CreateOrder(ctx context.Context, buyer *model.User, input Input) (*model.Order, error) {
	if input.ProductID == "" {
		return nil, &model.ValidationError{Message: "productId is required"}
	}
	product, err := s.products.FindProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &model.Order{
		ID:        primitive.NewObjectID(),
		Product:   product.ID,
		Seller:    product.User,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var buyerName, exclude string
	if buyer != nil {
		order.Buyer = &buyer.ID
		buyerName = buyer.Name
		exclude = buyer.ID.Hex()
	} else {
		if input.GuestInfo == nil || input.GuestInfo.Name == "" || input.GuestInfo.Phone == "" {
			return nil, &model.ValidationError{Message: "guest name and phone are required"}
		}
		order.GuestInfo = input.GuestInfo
		buyerName = input.GuestInfo.Name
	}

	if err := s.repo.Insert(ctx, order); err != nil {
		return nil, errors.Wrap(err, "unable to create order")
	}
	if err := s.products.RecordOrder(ctx, product.ID); err != nil {
		logrus.WithError(err).WithField("product_id", product.ID.Hex()).Error("unable to count order")
	}

	data := &model.OrderStatusData{OrderID: order.ID.Hex(), ProductID: product.ID.Hex()}
	if buyer != nil {
		data.BuyerID = buyer.ID.Hex()
	}
	_, err = s.notifications.CreateNotification(ctx, model.NotificationOrderStatus,
		fmt.Sprintf("%s ordered your product \"%s\"", buyerName, product.Name),
		notification.Options{
			UserID:        product.User.Hex(),
			ExcludeUserID: exclude,
			ProductID:     product.ID.Hex(),
			Link:          "/user-dashboard/orders",
			Data:          data,
		})
	if err != nil {
		logrus.WithError(err).WithField("order_id", order.ID.Hex()).Error("unable to notify seller")
	}

	return order, nil
}

func (s *service) GetSellerOrders(ctx context.Context, seller *model.User) ([]model.SellerOrder, error) {
	if seller == nil {
		return nil, model.Unauthorized("not authorized")
	}
	orders, err := s.repo.FindBySeller(ctx, seller.ID)
	if err != nil {
		return nil, errors.Wrap(err, "unable to list orders")
	}

	buyerIDs := []primitive.ObjectID{}
	for _, o := range orders {
		if o.Buyer != nil {
			buyerIDs = append(buyerIDs, *o.Buyer)
		}
	}
	buyers, err := s.users.FetchUsers(ctx, buyerIDs)
	if err != nil {
		return nil, err
	}

	products := map[primitive.ObjectID]*model.OrderProductSummary{}
	out := make([]model.SellerOrder, 0, len(orders))
	for _, o := range orders {
		summary, ok := products[o.Product]
		if !ok {
			if p, err := s.products.FindProduct(ctx, o.Product.Hex()); err == nil {
				summary = &model.OrderProductSummary{ID: p.ID.Hex(), Name: p.Name, Price: p.Price, Image: p.Image}
			}
			products[o.Product] = summary
		}

		so := model.SellerOrder{
			ID:        o.ID.Hex(),
			Product:   summary,
			Seller:    o.Seller.Hex(),
			GuestInfo: o.GuestInfo,
			CreatedAt: o.CreatedAt,
		}
		if o.Buyer != nil {
			if b, ok := buyers[*o.Buyer]; ok {
				so.Buyer = &model.UserSummary{ID: b.ID.Hex(), Name: b.Name, Email: b.Email, Phone: b.Phone}
			}
		}
		out = append(out, so)
	}
	return out, nil
}

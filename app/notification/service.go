package notification

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/TestingSDK2/produco-backend/app/config"
	"github.com/TestingSDK2/produco-backend/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Options optional inputs of CreateNotification
type Options struct {
	UserID        string
	TargetRole    string
	Data          model.Payload
	Link          string
	ProductID     string
	ExcludeUserID string
}

// Service - defines notification service
type Service interface {
	CreateNotification(ctx context.Context, notificationType, message string, opts Options) (*model.Notification, error)
	GetUserNotifications(ctx context.Context, userID, role string) ([]model.Notification, error)
	GetAllNotifications(ctx context.Context) ([]model.Notification, error)
	GetUnreadCount(ctx context.Context, userID, role string) (int64, error)
	MarkNotificationAsRead(ctx context.Context, notificationID string) (*model.Notification, error)
	MarkAllNotificationAsRead(ctx context.Context, userID string) (int64, error)
	DeleteNotification(ctx context.Context, notificationID string) error
	UseChannel(ch DeliveryChannel)
}

type service struct {
	config *config.Config
	repo   Repository

	mu      sync.RWMutex
	channel DeliveryChannel
}

// NewService - creates new notification service. A nil channel drops deliveries
// until UseChannel is called.
func NewService(repo Repository, conf *config.Config, ch DeliveryChannel) Service {
	if ch == nil {
		ch = nopChannel{}
	}
	return &service{
		config:  conf,
		repo:    repo,
		channel: ch,
	}
}

func (s *service) UseChannel(ch DeliveryChannel) {
	if ch == nil {
		ch = nopChannel{}
	}
	s.mu.Lock()
	s.channel = ch
	s.mu.Unlock()
}

func (s *service) deliveryChannel() DeliveryChannel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.channel
}

func (s *service) CreateNotification(ctx context.Context, notificationType, message string, opts Options) (*model.Notification, error) {
	notification, err := s.build(notificationType, message, opts)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, notification); err != nil {
		return nil, errors.Wrap(err, "unable to store notification")
	}

	target, exclude := dispatchTarget(opts)
	pushed := s.deliveryChannel().Deliver(target, notification, exclude)

	logrus.WithFields(logrus.Fields{
		"notification_id": notification.ID.Hex(),
		"type":            notification.Type,
		"target":          target,
		"exclude":         exclude,
		"pushed":          pushed,
	}).Debug("notification dispatched")

	return notification, nil
}

func (s *service) build(notificationType, message string, opts Options) (*model.Notification, error) {
	if !model.IsNotificationType(notificationType) {
		return nil, &model.ValidationError{Message: "invalid notification type: " + notificationType}
	}
	if strings.TrimSpace(message) == "" {
		return nil, &model.ValidationError{Message: "message is required"}
	}
	if opts.TargetRole != "" && !model.IsTargetRole(opts.TargetRole) {
		return nil, &model.ValidationError{Message: "invalid target role: " + opts.TargetRole}
	}
	if opts.UserID == "" && opts.TargetRole == "" {
		return nil, &model.ValidationError{Message: "a userId or a targetRole is required"}
	}
	if opts.Data != nil && opts.Data.NotificationType() != notificationType && notificationType != model.NotificationSystem {
		return nil, &model.ValidationError{Message: "data does not match notification type " + notificationType}
	}

	now := time.Now().UTC()
	notification := &model.Notification{
		ID:         primitive.NewObjectID(),
		UserID:     opts.UserID,
		TargetRole: opts.TargetRole,
		Type:       notificationType,
		Message:    message,
		Data:       opts.Data,
		Link:       opts.Link,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if notification.TargetRole == "" {
		notification.TargetRole = model.RoleUser
		notification.Personal = true
	}
	if notification.Link == "" {
		notification.Link = s.config.DefaultLink
	}
	if opts.ProductID != "" {
		productID, err := primitive.ObjectIDFromHex(opts.ProductID)
		if err != nil {
			return nil, &model.ValidationError{Message: "invalid productId"}
		}
		notification.Product = &productID
	}

	return notification, nil
}

// dispatchTarget resolves who receives the push. An explicit role wins over the
// user id; role pushes skip the acting user unless another exclusion is given.
func dispatchTarget(opts Options) (target, exclude string) {
	if opts.TargetRole != "" {
		exclude = opts.ExcludeUserID
		if exclude == "" {
			exclude = opts.UserID
		}
		return opts.TargetRole, exclude
	}
	return opts.UserID, opts.ExcludeUserID
}

func (s *service) GetUserNotifications(ctx context.Context, userID, role string) ([]model.Notification, error) {
	return s.repo.FindForUser(ctx, userID, role)
}

func (s *service) GetAllNotifications(ctx context.Context) ([]model.Notification, error) {
	return s.repo.FindAll(ctx)
}

func (s *service) GetUnreadCount(ctx context.Context, userID, role string) (int64, error) {
	return s.repo.CountUnread(ctx, userID, role)
}

func (s *service) MarkNotificationAsRead(ctx context.Context, notificationID string) (*model.Notification, error) {
	id, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return nil, model.NotFound("notification not found")
	}

	notification, err := s.repo.MarkRead(ctx, id)
	if errors.Cause(err) == model.ErrNotFound {
		return nil, model.NotFound("notification not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "unable to mark notification as read")
	}
	return notification, nil
}

func (s *service) MarkAllNotificationAsRead(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, &model.ValidationError{Message: "userId is required"}
	}
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *service) DeleteNotification(ctx context.Context, notificationID string) error {
	id, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return model.NotFound("notification not found")
	}

	err = s.repo.Delete(ctx, id)
	if errors.Cause(err) == model.ErrNotFound {
		return model.NotFound("notification not found")
	}
	return err
}

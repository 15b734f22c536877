package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/TestingSDK2/produco-backend/app/config"
	"github.com/TestingSDK2/produco-backend/app/notification"
	"github.com/TestingSDK2/produco-backend/cache"
	"github.com/TestingSDK2/produco-backend/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// Cache subset of the redis cache used for authenticated accounts
type Cache interface {
	GetJSON(key string, out interface{}) error
	SetJSON(key string, v interface{}, ttl int) error
	DeleteValue(key string) error
}

// RegisterInput sign-up form
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// AuthResult account returned after sign-up or sign-in
type AuthResult struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
	Phone  string `json:"phone,omitempty"`
	Token  string `json:"token"`
}

// Service - defines account service
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Authenticate(ctx context.Context, token string) (*model.User, error)
	FetchUser(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	FetchUsers(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	BlockUser(ctx context.Context, id string) (*model.User, error)
	UnblockUser(ctx context.Context, id string) (*model.User, error)
}

type service struct {
	config        *config.Config
	repo          Repository
	cache         Cache
	notifications notification.Service
}

// NewService - creates new account service. cache may be nil.
func NewService(repo Repository, c Cache, notifications notification.Service, conf *config.Config) Service {
	return &service{
		config:        conf,
		repo:          repo,
		cache:         c,
		notifications: notifications,
	}
}

func userCacheKey(id primitive.ObjectID) string {
	return "user:" + id.Hex()
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, &model.ValidationError{Message: "name, email and password are required"}
	}

	_, err := s.repo.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, &model.ValidationError{Message: "user already exists"}
	}
	if errors.Cause(err) != model.ErrNotFound {
		return nil, errors.Wrap(err, "unable to look up email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "unable to hash password")
	}

	role := model.RoleUser
	if s.config.IsAdminEmail(input.Email) {
		role = model.RoleAdmin
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  string(hash),
		Role:      role,
		Phone:     input.Phone,
		Status:    model.UserStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.notifyAdmins(ctx, user)

	return s.authResult(user)
}

// notifyAdmins sends one personal new_user notification per administrator
func (s *service) notifyAdmins(ctx context.Context, user *model.User) {
	admins, err := s.repo.FindByRole(ctx, model.RoleAdmin)
	if err != nil {
		logrus.WithError(err).Error("unable to list admins for new user notification")
		return
	}

	for _, admin := range admins {
		if admin.ID == user.ID {
			continue
		}
		_, err := s.notifications.CreateNotification(ctx, model.NotificationNewUser,
			fmt.Sprintf("New user registered: %s (%s)", user.Name, user.Email),
			notification.Options{
				UserID: admin.ID.Hex(),
				Data:   &model.NewUserData{UserID: user.ID.Hex()},
				Link:   "/users/" + user.ID.Hex(),
			})
		if err != nil {
			logrus.WithError(err).WithField("admin_id", admin.ID.Hex()).Error("unable to notify admin of new user")
		}
	}
}

func (s *service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Cause(err) == model.ErrNotFound {
		return nil, model.Unauthorized("invalid email or password")
	}
	if err != nil {
		return nil, errors.Wrap(err, "unable to look up email")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, model.Unauthorized("invalid email or password")
	}
	if user.IsDisabled() {
		return nil, model.Forbidden("your account has been " + user.Status)
	}

	return s.authResult(user)
}

func (s *service) authResult(user *model.User) (*AuthResult, error) {
	token, err := createJWTToken(user.ID.Hex(), user.Role, s.config.TokenExpiration, s.config.JWTKey)
	if err != nil {
		return nil, errors.Wrap(err, "unable to sign token")
	}
	return &AuthResult{
		ID:     user.ID.Hex(),
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		Status: user.Status,
		Phone:  user.Phone,
		Token:  token.Value,
	}, nil
}

func (s *service) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := fetchJWTToken(token, s.config.JWTKey)
	if err != nil {
		if isExpired(err) {
			return nil, model.Unauthorized("token has expired")
		}
		return nil, model.Unauthorized("invalid token")
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, model.Unauthorized("invalid token")
	}

	user, err := s.FetchUser(ctx, id)
	if errors.Cause(err) == model.ErrNotFound {
		return nil, model.Unauthorized("user not found")
	}
	if err != nil {
		return nil, err
	}
	if user.IsDisabled() {
		return nil, model.Forbidden("your account has been " + user.Status)
	}
	return user, nil
}

// FetchUser loads an account through the cache, falling back to mongo
func (s *service) FetchUser(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	key := userCacheKey(id)
	if s.cache != nil {
		cached := &model.User{}
		err := s.cache.GetJSON(key, cached)
		if err == nil {
			return cached, nil
		}
		if errors.Cause(err) != cache.ErrMiss {
			logrus.WithError(err).Warn("user cache unavailable")
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(key, user, cache.Expire18HR); err != nil {
			logrus.WithError(err).Warn("unable to cache user")
		}
	}
	return user, nil
}

func (s *service) FetchUsers(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.User, error) {
	users, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load users")
	}
	byID := make(map[primitive.ObjectID]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}

func (s *service) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *service) BlockUser(ctx context.Context, id string) (*model.User, error) {
	return s.setStatus(ctx, id, model.UserStatusBlocked)
}

func (s *service) UnblockUser(ctx context.Context, id string) (*model.User, error) {
	return s.setStatus(ctx, id, model.UserStatusActive)
}

func (s *service) setStatus(ctx context.Context, id, status string) (*model.User, error) {
	userID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.NotFound("user not found")
	}

	target, err := s.repo.FindByID(ctx, userID)
	if errors.Cause(err) == model.ErrNotFound {
		return nil, model.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	if status == model.UserStatusBlocked && s.config.PrimaryAdminEmail != "" &&
		strings.EqualFold(target.Email, s.config.PrimaryAdminEmail) {
		return nil, model.Forbidden("the primary administrator cannot be blocked")
	}

	user, err := s.repo.SetStatus(ctx, userID, status)
	if errors.Cause(err) == model.ErrNotFound {
		return nil, model.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.DeleteValue(userCacheKey(userID)); err != nil {
			logrus.WithError(err).Warn("unable to evict cached user")
		}
	}
	return user, nil
}

package app

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/TestingSDK2/produco-backend/app/config"
	"github.com/TestingSDK2/produco-backend/app/notification"
	"github.com/TestingSDK2/produco-backend/app/order"
	"github.com/TestingSDK2/produco-backend/app/product"
	"github.com/TestingSDK2/produco-backend/app/transaction"
	"github.com/TestingSDK2/produco-backend/app/user"
	"github.com/TestingSDK2/produco-backend/cache"
	"github.com/TestingSDK2/produco-backend/model"
	"github.com/TestingSDK2/produco-backend/mongodatabase"
)

// App our application
type App struct {
	Config              *config.Config
	Repos               *model.Repos
	NotificationService notification.Service
	UserService         user.Service
	ProductService      product.Service
	OrderService        order.Service
	TransactionService  transaction.Service
}

// NewContext create new request context
func (a *App) NewContext() *Context {
	return &Context{
		Logger: logrus.StandardLogger(),
	}
}

// New create a new app
func New(ctx context.Context) (app *App, err error) {
	appConf, err := config.InitConfig()
	if err != nil {
		return nil, err
	}

	cacheConf, err := cache.InitConfig()
	if err != nil {
		return nil, err
	}

	mongoDBConf, err := mongodatabase.InitConfig()
	if err != nil {
		return nil, err
	}

	mongoDB, err := mongodatabase.New(ctx, mongoDBConf)
	if err != nil {
		return nil, err
	}

	repos := &model.Repos{
		Cache:   cache.New(cacheConf),
		MongoDB: mongoDB,
	}
	if err := repos.Cache.Ping(); err != nil {
		logrus.WithError(err).Warn("cache unavailable, user lookups will hit mongo")
	}

	return Build(appConf, repos, nil), nil
}

// Build wires services on top of already opened repos. A nil cache disables
// the authenticated-user cache.
func Build(appConf *config.Config, repos *model.Repos, userCache user.Cache) *App {
	if userCache == nil && repos.Cache != nil {
		userCache = repos.Cache
	}
	db := repos.MongoDB.DB

	notificationService := notification.NewService(notification.NewRepository(db), appConf, nil)
	userService := user.NewService(user.NewRepository(db), userCache, notificationService, appConf)
	productService := product.NewService(product.NewRepository(db), userService, notificationService, appConf)

	return &App{
		Config:              appConf,
		Repos:               repos,
		NotificationService: notificationService,
		UserService:         userService,
		ProductService:      productService,
		OrderService:        order.NewService(order.NewRepository(db), productService, userService, notificationService),
		TransactionService:  transaction.NewService(transaction.NewRepository(db)),
	}
}

// Close closes application handles and connections
func (a *App) Close() {
	logrus.Info("Closing Connection to database")

	if err := a.Repos.MongoDB.Close(); err != nil {
		logrus.Error("unable to close connection to mongo", err)
	}
	if a.Repos.Cache != nil {
		if err := a.Repos.Cache.Close(); err != nil {
			logrus.Error("unable to close connection to cache", err)
		}
	}
}

// ValidationError error when inputs are invalid
type ValidationError = model.ValidationError

// UserError when user is disallowed from resource
type UserError = model.UserError

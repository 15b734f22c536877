package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/TestingSDK2/produco-backend/api/common"
	"github.com/TestingSDK2/produco-backend/api/notificationapi"
	"github.com/TestingSDK2/produco-backend/api/orderapi"
	"github.com/TestingSDK2/produco-backend/api/productapi"
	"github.com/TestingSDK2/produco-backend/api/transactionapi"
	"github.com/TestingSDK2/produco-backend/api/userapi"
	"github.com/TestingSDK2/produco-backend/app"
)

// API produco api
type API struct {
	App    *app.App
	Config *common.Config
}

// New creates a new api
func New(a *app.App) (api *API, err error) {
	api = &API{App: a}
	api.Config, err = common.InitConfig()
	if err != nil {
		return nil, err
	}
	return api, nil
}

// Init initializes the api
func (a *API) Init(r *mux.Router) {

	/* ****************** NOTIFICATIONS ****************** */
	notificationAPI := notificationapi.New(a.Config, a.App.NotificationService)
	r.Handle("/notifications", a.handler(notificationAPI.CreateNotification)).Methods(http.MethodPost)
	r.Handle("/notifications", a.handler(notificationAPI.GetAllNotifications, true, true)).Methods(http.MethodGet)
	r.Handle("/notifications/user/{userId}/read", a.handler(notificationAPI.MarkAllAsRead)).Methods(http.MethodPatch)
	r.Handle("/notifications/{id}/read", a.handler(notificationAPI.MarkAsRead)).Methods(http.MethodPatch, http.MethodPut)
	r.Handle("/notifications/{id}", a.handler(notificationAPI.DeleteNotification)).Methods(http.MethodDelete)
	r.Handle("/notifications/{userId}/{role}/unread", a.handler(notificationAPI.GetUnreadCount)).Methods(http.MethodGet)
	r.Handle("/notifications/{userId}/{role}", a.handler(notificationAPI.GetUserNotifications)).Methods(http.MethodGet)

	/* ****************** USERS ****************** */
	userAPI := userapi.New(a.Config, a.App.UserService)
	r.Handle("/users/register", a.handler(userAPI.Register)).Methods(http.MethodPost)
	r.Handle("/users/login", a.handler(userAPI.Login)).Methods(http.MethodPost)
	r.Handle("/users", a.handler(userAPI.ListUsers, true, true)).Methods(http.MethodGet)
	r.Handle("/users/{id}/block", a.handler(userAPI.BlockUser, true, true)).Methods(http.MethodPut)
	r.Handle("/users/{id}/unblock", a.handler(userAPI.UnblockUser, true, true)).Methods(http.MethodPut)

	/* ****************** PRODUCTS ****************** */
	productAPI := productapi.New(a.Config, a.App.ProductService)
	r.Handle("/products", a.handler(productAPI.ListProducts)).Methods(http.MethodGet)
	r.Handle("/products", a.handler(productAPI.CreateProduct, true)).Methods(http.MethodPost)
	r.Handle("/products/user/{userId}", a.handler(productAPI.ListUserProducts, true)).Methods(http.MethodGet)
	r.Handle("/products/admin/{id}", a.handler(productAPI.DeleteProduct, true, true)).Methods(http.MethodDelete)
	r.Handle("/products/{id}", a.handler(productAPI.GetProduct)).Methods(http.MethodGet)
	r.Handle("/products/{id}", a.handler(productAPI.UpdateProduct, true)).Methods(http.MethodPut)
	r.Handle("/products/{id}", a.handler(productAPI.DeleteProduct, true)).Methods(http.MethodDelete)
	r.Handle("/products/{id}/view", a.handler(productAPI.ViewProduct)).Methods(http.MethodPost)
	r.Handle("/products/{id}/publish", a.handler(productAPI.PublishProduct, true)).Methods(http.MethodPut)
	r.Handle("/products/{id}/admin", a.handler(productAPI.BlockProduct, true, true)).Methods(http.MethodDelete)
	r.Handle("/products/{id}/admin/approve", a.handler(productAPI.ApproveProduct, true, true)).Methods(http.MethodPut)
	r.Handle("/products/{id}/like", a.handler(productAPI.LikeProduct)).Methods(http.MethodPut)
	r.Handle("/products/{id}/unlike", a.handler(productAPI.UnlikeProduct)).Methods(http.MethodPut)

	/* ****************** ORDERS ****************** */
	orderAPI := orderapi.New(a.Config, a.App.OrderService)
	r.Handle("/orders", a.handler(orderAPI.CreateOrder)).Methods(http.MethodPost)
	r.Handle("/orders/mine", a.handler(orderAPI.GetMyOrders, true)).Methods(http.MethodGet)

	/* ****************** TRANSACTIONS ****************** */
	transactionAPI := transactionapi.New(a.Config, a.App.TransactionService)
	r.Handle("/transactions", a.handler(transactionAPI.GetTransactions)).Methods(http.MethodGet)
	r.Handle("/transactions", a.handler(transactionAPI.CreateTransaction)).Methods(http.MethodPost)
}

package orderapi

import (
	"net/http"

	"github.com/TestingSDK2/produco-backend/api/common"
	"github.com/TestingSDK2/produco-backend/app"
	"github.com/TestingSDK2/produco-backend/app/order"
	"github.com/TestingSDK2/produco-backend/model"
)

func (a *api) CreateOrder(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	var input order.Input
	if err := common.DecodeJSON(r, &input); err != nil {
		return err
	}

	created, err := a.orderService.CreateOrder(ctx.Context(), ctx.User, input)
	if err != nil {
		return err
	}
	ctx.Logger.WithField("order_id", created.ID.Hex()).Info("order placed")
	return common.WriteJSON(w, http.StatusCreated, created)
}

func (a *api) GetMyOrders(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	orders, err := a.orderService.GetSellerOrders(ctx.Context(), ctx.User)
	if err != nil {
		return err
	}
	if orders == nil {
		orders = []model.SellerOrder{}
	}
	return common.WriteJSON(w, http.StatusOK, orders)
}

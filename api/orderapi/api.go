package orderapi

import (
	"github.com/TestingSDK2/produco-backend/api/common"
	"github.com/TestingSDK2/produco-backend/app/order"
)

type api struct {
	config       *common.Config
	orderService order.Service
}

// New creates a new order api
func New(conf *common.Config, orderService order.Service) *api {
	return &api{
		config:       conf,
		orderService: orderService,
	}
}

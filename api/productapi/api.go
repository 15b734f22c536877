package productapi

import (
	"github.com/TestingSDK2/produco-backend/api/common"
	"github.com/TestingSDK2/produco-backend/app/product"
)

type api struct {
	config         *common.Config
	productService product.Service
}

// New creates a new product api
func New(conf *common.Config, productService product.Service) *api {
	return &api{
		config:         conf,
		productService: productService,
	}
}

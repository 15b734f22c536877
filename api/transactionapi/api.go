package transactionapi

import (
	"github.com/TestingSDK2/produco-backend/api/common"
	"github.com/TestingSDK2/produco-backend/app/transaction"
)

type api struct {
	config             *common.Config
	transactionService transaction.Service
}

// New creates a new transaction api
func New(conf *common.Config, transactionService transaction.Service) *api {
	return &api{
		config:             conf,
		transactionService: transactionService,
	}
}

package transactionapi

import (
	"net/http"

	"github.com/TestingSDK2/produco-backend/api/common"
	"github.com/TestingSDK2/produco-backend/app"
	"github.com/TestingSDK2/produco-backend/app/transaction"
	"github.com/TestingSDK2/produco-backend/model"
)

func (a *api) GetTransactions(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	transactions, err := a.transactionService.GetTransactions(ctx.Context())
	if err != nil {
		return err
	}
	if transactions == nil {
		transactions = []model.Transaction{}
	}
	return common.WriteJSON(w, http.StatusOK, transactions)
}

func (a *api) CreateTransaction(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	var input transaction.Input
	if err := common.DecodeJSON(r, &input); err != nil {
		return err
	}

	created, err := a.transactionService.CreateTransaction(ctx.Context(), input)
	if err != nil {
		return err
	}
	return common.WriteJSON(w, http.StatusCreated, created)
}

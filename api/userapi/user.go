package userapi

import (
	"net/http"

	"github.com/TestingSDK2/produco-backend/api/common"
	"github.com/TestingSDK2/produco-backend/app"
	"github.com/TestingSDK2/produco-backend/app/user"
	"github.com/TestingSDK2/produco-backend/model"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *api) Register(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	var input user.RegisterInput
	if err := common.DecodeJSON(r, &input); err != nil {
		return err
	}

	res, err := a.userService.Register(ctx.Context(), input)
	if err != nil {
		return err
	}
	ctx.Logger.WithField("user_id", res.ID).Info("account registered")
	return common.WriteJSON(w, http.StatusCreated, res)
}

func (a *api) Login(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	var req loginRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		return err
	}

	res, err := a.userService.Login(ctx.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return common.WriteJSON(w, http.StatusOK, res)
}

func (a *api) ListUsers(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	users, err := a.userService.ListUsers(ctx.Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []model.User{}
	}
	return common.WriteJSON(w, http.StatusOK, users)
}

func (a *api) BlockUser(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	blocked, err := a.userService.BlockUser(ctx.Context(), ctx.Vars["id"])
	if err != nil {
		return err
	}
	return common.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": "user blocked", "user": blocked})
}

func (a *api) UnblockUser(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	unblocked, err := a.userService.UnblockUser(ctx.Context(), ctx.Vars["id"])
	if err != nil {
		return err
	}
	return common.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": "user unblocked", "user": unblocked})
}

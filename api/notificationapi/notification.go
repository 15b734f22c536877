package notificationapi

import (
	"encoding/json"
	"net/http"

	"github.com/TestingSDK2/produco-backend/api/common"
	"github.com/TestingSDK2/produco-backend/app"
	"github.com/TestingSDK2/produco-backend/app/notification"
	"github.com/TestingSDK2/produco-backend/model"
)

type createNotificationRequest struct {
	Type          string          `json:"type"`
	Message       string          `json:"message"`
	UserID        string          `json:"userId"`
	TargetRole    string          `json:"targetRole"`
	Data          json.RawMessage `json:"data"`
	Link          string          `json:"link"`
	ProductID     string          `json:"productId"`
	ExcludeUserID string          `json:"excludeUserId"`
}

func (a *api) CreateNotification(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	var req createNotificationRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		return err
	}

	payload, err := model.DecodePayload(req.Type, req.Data)
	if err != nil {
		return &app.ValidationError{Message: "invalid data for notification type " + req.Type}
	}

	created, err := a.notificationService.CreateNotification(ctx.Context(), req.Type, req.Message, notification.Options{
		UserID:        req.UserID,
		TargetRole:    req.TargetRole,
		Data:          payload,
		Link:          req.Link,
		ProductID:     req.ProductID,
		ExcludeUserID: req.ExcludeUserID,
	})
	if err != nil {
		return err
	}
	return common.WriteJSON(w, http.StatusCreated, created)
}

func (a *api) GetUserNotifications(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	notifications, err := a.notificationService.GetUserNotifications(ctx.Context(), ctx.Vars["userId"], ctx.Vars["role"])
	if err != nil {
		return err
	}
	return common.WriteJSON(w, http.StatusOK, nonNil(notifications))
}

func (a *api) GetAllNotifications(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	notifications, err := a.notificationService.GetAllNotifications(ctx.Context())
	if err != nil {
		return err
	}
	return common.WriteJSON(w, http.StatusOK, nonNil(notifications))
}

func (a *api) GetUnreadCount(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	count, err := a.notificationService.GetUnreadCount(ctx.Context(), ctx.Vars["userId"], ctx.Vars["role"])
	if err != nil {
		return err
	}
	return common.WriteJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (a *api) MarkAsRead(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	updated, err := a.notificationService.MarkNotificationAsRead(ctx.Context(), ctx.Vars["id"])
	if err != nil {
		return err
	}
	return common.WriteJSON(w, http.StatusOK, updated)
}

func (a *api) MarkAllAsRead(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	modified, err := a.notificationService.MarkAllNotificationAsRead(ctx.Context(), ctx.Vars["userId"])
	if err != nil {
		return err
	}
	return common.WriteJSON(w, http.StatusOK, map[string]int64{"modified": modified})
}

func (a *api) DeleteNotification(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	if err := a.notificationService.DeleteNotification(ctx.Context(), ctx.Vars["id"]); err != nil {
		return err
	}
	return common.WriteJSON(w, http.StatusOK, map[string]string{"message": "notification deleted"})
}

func nonNil(notifications []model.Notification) []model.Notification {
	if notifications == nil {
		return []model.Notification{}
	}
	return notifications
}

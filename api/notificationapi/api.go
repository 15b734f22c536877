package notificationapi

import (
	"github.com/TestingSDK2/produco-backend/api/common"
	"github.com/TestingSDK2/produco-backend/app/notification"
)

type api struct {
	config              *common.Config
	notificationService notification.Service
}

// New creates a new notification api
func New(conf *common.Config, notificationService notification.Service) *api {
	return &api{
		config:              conf,
		notificationService: notificationService,
	}
}

package userapi

import (
	"github.com/TestingSDK2/produco-backend/api/common"
	"github.com/TestingSDK2/produco-backend/app/user"
)

type api struct {
	config      *common.Config
	userService user.Service
}

// New creates a new account api
func New(conf *common.Config, userService user.Service) *api {
	return &api{
		config:      conf,
		userService: userService,
	}
}

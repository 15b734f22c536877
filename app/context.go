package app

import (
	"context"
	"net/http"

	"github.com/TestingSDK2/produco-backend/model"
	"github.com/sirupsen/logrus"
)

// Context per request state
type Context struct {
	Logger        logrus.FieldLogger
	RemoteAddress string
	User          *model.User
	Vars          map[string]string
	Ctx           context.Context
}

// WithLogger sets logger for context
func (ctx *Context) WithLogger(logger logrus.FieldLogger) *Context {
	ret := *ctx
	ret.Logger = logger
	return &ret
}

// WithRemoteAddress sets remote address for context
func (ctx *Context) WithRemoteAddress(address string) *Context {
	ret := *ctx
	ret.RemoteAddress = address
	return &ret
}

// WithUser sets user for context
func (ctx *Context) WithUser(user *model.User) *Context {
	ret := *ctx
	ret.User = user
	return &ret
}

// WithContext sets the request scoped context.Context
func (ctx *Context) WithContext(c context.Context) *Context {
	ret := *ctx
	ret.Ctx = c
	return &ret
}

// Context returns the request scoped context.Context
func (ctx *Context) Context() context.Context {
	if ctx.Ctx == nil {
		return context.Background()
	}
	return ctx.Ctx
}

// GuestKey identifies an anonymous visitor by remote address
func (ctx *Context) GuestKey() string {
	return "guest_" + ctx.RemoteAddress
}

// AuthorizationError helper for when user is not authorized
func (ctx *Context) AuthorizationError(isInValidToken bool) *UserError {
	if isInValidToken {
		return &UserError{Message: "Token has expired", StatusCode: http.StatusUnauthorized}
	}
	return &UserError{Message: "Invalid Credentials", StatusCode: http.StatusForbidden}
}

// AdminRequired helper for admin only resources
func (ctx *Context) AdminRequired() *UserError {
	return &UserError{Message: "access denied, administrator required", StatusCode: http.StatusForbidden}
}

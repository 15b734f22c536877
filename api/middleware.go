package api

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/TestingSDK2/produco-backend/api/common"
	"github.com/TestingSDK2/produco-backend/app"
	"github.com/TestingSDK2/produco-backend/util"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// handler adapts f to http.HandlerFunc. auth[0] requires a signed-in user,
// auth[1] additionally requires the admin role. Without auth a bearer token is
// still resolved when present so optional-auth routes can see the user.
func (a *API) handler(f common.HandlerFuncWithCTX, auth ...bool) http.HandlerFunc {
	checkAuth := len(auth) > 0 && auth[0]
	adminOnly := len(auth) > 1 && auth[1]

	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, a.Config.MaxContentSize*1024*1024)
		beginTime := time.Now()
		hijacker, _ := w.(http.Hijacker)
		ctx := a.App.NewContext().WithRemoteAddress(a.IPAddressForRequest(r)).WithContext(r.Context())
		ctx = ctx.WithLogger(ctx.Logger.WithField("request_id", uuid.NewString()))
		ctx.Vars = mux.Vars(r)

		w = &common.StatusCodeRecorder{
			ResponseWriter: w,
			Hijacker:       hijacker,
		}
		w.Header().Set("Content-Type", "application/json")

		defer func() {
			statusCode := w.(*common.StatusCodeRecorder).StatusCode
			if statusCode == 0 {
				statusCode = 200
			}
			duration := time.Since(beginTime)

			logger := ctx.Logger.WithFields(logrus.Fields{
				"duration":    duration,
				"status_code": statusCode,
				"remote":      ctx.RemoteAddress,
			})
			logger.Info(r.Method + " " + r.URL.RequestURI())
		}()

		defer func() {
			if localRecover := recover(); localRecover != nil {
				ctx.Logger.Error(fmt.Errorf("recovered from panic\n %v: %s", localRecover, debug.Stack()))
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(util.SetResponse(nil, 0, "server failed to process request"))
			}
		}()

		user, err := a.validateUser(ctx, r, checkAuth)
		if err != nil {
			a.writeError(ctx, w, err)
			return
		}
		if user != nil {
			ctx = ctx.WithUser(user)
			ctx = ctx.WithLogger(ctx.Logger.WithField("user_id", user.ID.Hex()))
		}
		if adminOnly && !ctx.User.IsAdmin() {
			a.writeError(ctx, w, ctx.AdminRequired())
			return
		}

		if err := f(ctx, w, r); err != nil {
			a.writeError(ctx, w, err)
		}
	}
}

func (a *API) writeError(ctx *app.Context, w http.ResponseWriter, err error) {
	if verr, ok := err.(*app.ValidationError); ok {
		common.WriteJSON(w, http.StatusBadRequest, verr)
		return
	}
	if uerr, ok := err.(*app.UserError); ok {
		common.WriteJSON(w, uerr.StatusCode, uerr)
		return
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		common.WriteJSON(w, http.StatusRequestEntityTooLarge, &app.UserError{Message: "request body too large"})
		return
	}

	ctx.Logger.WithError(err).Error("request failed")
	common.WriteJSON(w, http.StatusInternalServerError, util.SetResponse(nil, 0, "server error"))
}

// IPAddressForRequest determines IP address for request
func (a *API) IPAddressForRequest(r *http.Request) string {
	addr := r.RemoteAddr
	if a.Config.ProxyCount > 0 {
		h := r.Header.Get("X-Forwarded-For")
		if h != "" {
			clients := strings.Split(h, ",")
			if a.Config.ProxyCount > len(clients) {
				addr = clients[0]
			} else {
				addr = clients[len(clients)-a.Config.ProxyCount]
			}
		}
	}
	addr = strings.TrimSpace(addr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return strings.Trim(addr, "[]")
}

package api

import (
	"net/http"
	"strings"

	"github.com/TestingSDK2/produco-backend/app"
	"github.com/TestingSDK2/produco-backend/model"
)

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// validateUser resolves the bearer token. With required unset a missing or
// unusable token yields no user and no error.
func (a *API) validateUser(ctx *app.Context, r *http.Request, required bool) (*model.User, error) {
	token := bearerToken(r)
	if token == "" {
		if required {
			return nil, model.Unauthorized("no token, access denied")
		}
		return nil, nil
	}

	user, err := a.App.UserService.Authenticate(ctx.Context(), token)
	if err != nil {
		if required {
			return nil, err
		}
		ctx.Logger.WithError(err).Debug("ignoring unusable token on public route")
		return nil, nil
	}
	return user, nil
}

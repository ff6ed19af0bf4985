package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/findme-app/backend/internal/model"
	"github.com/findme-app/backend/pkg/authenticator"
	"github.com/findme-app/backend/pkg/errorx"
	"github.com/findme-app/backend/pkg/router"
	"github.com/findme-app/backend/pkg/xcontext"
)

// HandleAccessToken resolves the request identity from the bearer token or
// the access token cookie. An absent token leaves the request anonymous, an
// invalid one fails it.
func HandleAccessToken(engine authenticator.TokenEngine[model.AccessToken]) router.MiddlewareFunc {
	return func(ctx context.Context, r *http.Request) (context.Context, error) {
		token := accessToken(ctx, r)
		if token == "" {
			return ctx, nil
		}

		info, err := engine.Verify(token)
		if err != nil {
			return ctx, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestUserID(ctx, info.Username), nil
	}
}

func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context, r *http.Request) (context.Context, error) {
		if xcontext.RequestUserID(ctx) == "" {
			return ctx, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		return ctx, nil
	}
}

func accessToken(ctx context.Context, r *http.Request) string {
	authorization := r.Header.Get("Authorization")
	if auth, token, found := strings.Cut(authorization, " "); found && auth == "Bearer" {
		return token
	}

	cookie, err := r.Cookie(xcontext.Configs(ctx).Auth.AccessTokenName)
	if err != nil {
		return ""
	}

	return cookie.Value
}

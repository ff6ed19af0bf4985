package testutil

import (
	"context"
	"time"

	"github.com/findme-app/backend/config"
	"github.com/findme-app/backend/pkg/logger"
	"github.com/findme-app/backend/pkg/xcontext"
)

// NewContext returns a request context for user1, the default test identity.
func NewContext() context.Context {
	return NewContextWithUserID("user1")
}

func NewContextWithUserID(userID string) context.Context {
	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, config.Configs{
		Auth: config.AuthConfigs{
			TokenSecret:     "secret",
			AccessTokenName: "access_token",
			TokenExpiration: time.Minute,
		},
	})
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))

	if userID != "" {
		ctx = xcontext.WithRequestUserID(ctx, userID)
	}

	return ctx
}

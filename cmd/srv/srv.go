package main

import (
	"context"
	"net/http"

	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/findme-app/backend/config"
	"github.com/findme-app/backend/internal/client"
	"github.com/findme-app/backend/internal/domain"
	"github.com/findme-app/backend/internal/repository"
	"github.com/findme-app/backend/pkg/logger"
	"github.com/findme-app/backend/pkg/router"
	"github.com/findme-app/backend/pkg/storage"
	"github.com/findme-app/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs *config.Configs
	logger  logger.Logger

	dynamodb    dynamodbiface.DynamoDBAPI
	blobStorage storage.Storage
	redisClient xredis.Client

	riddleRepo   repository.RiddleRepository
	followerRepo repository.FollowerRepository
	userRepo     repository.UserRepository

	userClient client.UserServiceClient

	riddleDomain      domain.RiddleDomain
	followDomain      domain.FollowDomain
	userDomain        domain.UserDomain
	leaderboardDomain domain.LeaderboardDomain

	router *router.Router
	server *http.Server
}

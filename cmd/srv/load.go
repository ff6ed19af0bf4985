package main

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/findme-app/backend/config"
	"github.com/findme-app/backend/internal/client"
	"github.com/findme-app/backend/internal/domain"
	"github.com/findme-app/backend/internal/model"
	"github.com/findme-app/backend/internal/repository"
	"github.com/findme-app/backend/pkg/authenticator"
	"github.com/findme-app/backend/pkg/logger"
	"github.com/findme-app/backend/pkg/storage"
	"github.com/findme-app/backend/pkg/xcontext"
	"github.com/findme-app/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
)

func (s *srv) loadConfig(ct *cli.Context) {
	configs, err := config.Load(ct.String("config"))
	if err != nil {
		panic(err)
	}

	s.configs = &configs
}

func (s *srv) loadLogger() {
	s.logger = logger.NewLoggerByName(s.configs.LogLevel)
}

func (s *srv) loadContext() {
	s.ctx = xcontext.WithConfigs(context.Background(), *s.configs)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(s.configs.DynamoDB.Region),
		Endpoint:    aws.String(s.configs.DynamoDB.Endpoint),
		Credentials: credentials.NewStaticCredentials(s.configs.DynamoDB.AccessKey, s.configs.DynamoDB.SecretKey, ""),
		DisableSSL:  aws.Bool(s.configs.DynamoDB.SSLDisabled),
	})
	if err != nil {
		panic(err)
	}

	s.dynamodb = dynamodb.New(sess)
}

func (s *srv) loadStorage() {
	s.blobStorage = storage.NewS3Storage(s.configs.Storage)
}

func (s *srv) loadRedisClient() {
	redisClient, err := xredis.NewClient(s.ctx, s.configs.Redis)
	if err != nil {
		panic(err)
	}

	s.redisClient = redisClient
}

func (s *srv) loadRepos() {
	s.riddleRepo = repository.NewRiddleRepository(s.dynamodb, s.configs.DynamoDB.RiddleTable)
	s.followerRepo = repository.NewFollowerRepository(s.dynamodb, s.configs.DynamoDB.GraphTable)
	s.userRepo = repository.NewUserRepository(s.dynamodb, s.configs.DynamoDB.UserTable)
}

func (s *srv) loadUserClient() {
	s.userClient = client.NewUserServiceClient(s.configs.UserService.Endpoints...)
}

func (s *srv) loadDomains() {
	s.leaderboardDomain = domain.NewLeaderboardDomain(s.redisClient)
	s.riddleDomain = domain.NewRiddleDomain(s.riddleRepo, s.userClient, s.blobStorage, s.leaderboardDomain)
	s.followDomain = domain.NewFollowDomain(s.followerRepo, client.NewLocalUserLookup(s.userRepo))
	s.userDomain = domain.NewUserDomain(s.userRepo)
}

func (s *srv) newTokenEngine() authenticator.TokenEngine[model.AccessToken] {
	return authenticator.NewTokenEngine[model.AccessToken](s.configs.Auth)
}

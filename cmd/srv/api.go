package main

import (
	"net/http"

	"github.com/findme-app/backend/internal/middleware"
	"github.com/findme-app/backend/pkg/router"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(ct *cli.Context) error {
	s.loadConfig(ct)
	s.loadLogger()
	s.loadContext()
	s.loadDatabase()
	s.loadStorage()
	s.loadRedisClient()
	s.loadRepos()
	s.loadUserClient()
	s.loadDomains()
	s.loadRouter()

	s.server = &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: s.router.Handler(),
	}

	s.logger.Infof("Starting api server on %s", s.configs.ApiServer.Address())
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	s.logger.Infof("Api server stopped")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx, *s.configs)
	s.router.Before(middleware.HandleAccessToken(s.newTokenEngine()))

	// Public APIs.
	publicRouter := s.router.Group("/")
	{
		router.GET(publicRouter, "/getUser", s.userDomain.Get)
		router.GET(publicRouter, "/searchUsers", s.userDomain.Search)
		router.GET(publicRouter, "/getLeaderboard", s.leaderboardDomain.GetLeaderboard)
	}

	// These APIs need an authenticated identity.
	authRouter := s.router.Group("/")
	authRouter.Before(middleware.Authenticate())
	{
		router.POST(authRouter, "/createLocationRiddle", s.riddleDomain.Create)
		router.GET(authRouter, "/getLocationRiddle", s.riddleDomain.Get)
		router.GET(authRouter, "/getLocationRiddlesOfUser", s.riddleDomain.GetByCreator)
		router.GET(authRouter, "/getLocationRiddlesOfArena", s.riddleDomain.GetByArena)
		router.GET(authRouter, "/getLocationRiddleFeed", s.riddleDomain.GetFeed)
		router.GET(authRouter, "/getSolvedLocationRiddles", s.riddleDomain.GetSolved)
		router.POST(authRouter, "/rateLocationRiddle", s.riddleDomain.Rate)
		router.POST(authRouter, "/guessLocationRiddle", s.riddleDomain.Guess)
		router.POST(authRouter, "/commentLocationRiddle", s.riddleDomain.Comment)
		router.POST(authRouter, "/deleteLocationRiddle", s.riddleDomain.Delete)

		router.POST(authRouter, "/createFollowRequest", s.followDomain.Create)
		router.POST(authRouter, "/acceptFollowRequest", s.followDomain.Accept)
		router.POST(authRouter, "/declineFollowRequest", s.followDomain.Decline)
		router.GET(authRouter, "/getReceivedFollowRequests", s.followDomain.GetReceived)
		router.GET(authRouter, "/getConnections", s.followDomain.GetConnections)

		router.POST(authRouter, "/registerUser", s.userDomain.Register)
		router.POST(authRouter, "/updateUser", s.userDomain.Update)
		router.POST(authRouter, "/addScore", s.userDomain.AddScore)
		router.GET(authRouter, "/getScores", s.userDomain.GetScores)
	}
}

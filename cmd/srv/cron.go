package main

import (
	"github.com/findme-app/backend/internal/domain/cron"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(ct *cli.Context) error {
	s.loadConfig(ct)
	s.loadLogger()
	s.loadContext()
	s.loadDatabase()
	s.loadRepos()

	manager := cron.NewCronJobManager()
	manager.Register(cron.NewReconcileFollowEdgesCronJob(s.followerRepo))
	manager.Start(s.ctx)

	return nil
}

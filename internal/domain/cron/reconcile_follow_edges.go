package cron

import (
	"context"
	"time"

	"github.com/findme-app/backend/internal/repository"
	"github.com/findme-app/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
)

// ReconcileFollowEdgesCronJob re-creates relationship rows for accepted
// follow requests whose edge writes were lost. Accepting a request updates
// the request row first and writes the two edge rows after, a crash in
// between leaves an accepted request without edges.
type ReconcileFollowEdgesCronJob struct {
	followerRepo repository.FollowerRepository
}

func NewReconcileFollowEdgesCronJob(
	followerRepo repository.FollowerRepository,
) *ReconcileFollowEdgesCronJob {
	return &ReconcileFollowEdgesCronJob{followerRepo: followerRepo}
}

func (job *ReconcileFollowEdgesCronJob) Do(ctx context.Context) {
	accepted, err := job.followerRepo.GetAcceptedRequests(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get accepted follow requests: %v", err)
		return
	}

	followersOf := map[string][]string{}
	followingOf := map[string][]string{}

	healed := 0
	for _, request := range accepted {
		followers, ok := followersOf[request.Requestee]
		if !ok {
			followers, err = job.followerRepo.GetFollowers(ctx, request.Requestee)
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot get followers of %s: %v", request.Requestee, err)
				continue
			}

			followersOf[request.Requestee] = followers
		}

		following, ok := followingOf[request.Requester]
		if !ok {
			following, err = job.followerRepo.GetFollowing(ctx, request.Requester)
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot get following of %s: %v", request.Requester, err)
				continue
			}

			followingOf[request.Requester] = following
		}

		if slices.Contains(followers, request.Requester) &&
			slices.Contains(following, request.Requestee) {
			continue
		}

		// CreateEdges overwrites an existing edge row, re-putting the intact
		// half of the pair is harmless.
		if err := job.followerRepo.CreateEdges(ctx, request.Requester, request.Requestee); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot heal edges of %s -> %s: %v",
				request.Requester, request.Requestee, err)
			continue
		}

		healed++
	}

	if healed > 0 {
		xcontext.Logger(ctx).Infof("Healed %d follower edge pairs", healed)
	}
}

func (job *ReconcileFollowEdgesCronJob) RunNow() bool {
	return true
}

func (job *ReconcileFollowEdgesCronJob) Next() time.Time {
	return time.Now().Add(time.Hour)
}

package cron

import (
	"context"
	"testing"
	"time"

	"github.com/findme-app/backend/internal/entity"
	"github.com/findme-app/backend/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestReconcileFollowEdges(t *testing.T) {
	ctx := context.Background()
	followerRepo := testutil.NewInMemoryFollowerRepository()

	// A healthy accepted pair.
	followerRepo.MustAccept("user1", "user2")

	// An accepted request whose edge write was lost.
	require.NoError(t, followerRepo.CreateRequest(ctx, &entity.FollowRequest{
		Requester: "user3",
		Requestee: "user2",
		Status:    entity.FollowStatusPending,
		CreatedAt: time.Now().Unix(),
	}))
	_, err := followerRepo.UpdateRequestStatus(ctx, "user3", "user2", entity.FollowStatusAccepted)
	require.NoError(t, err)

	followers, err := followerRepo.GetFollowers(ctx, "user2")
	require.NoError(t, err)
	require.NotContains(t, followers, "user3")

	NewReconcileFollowEdgesCronJob(followerRepo).Do(ctx)

	followers, err = followerRepo.GetFollowers(ctx, "user2")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"user1", "user3"}, followers)

	following, err := followerRepo.GetFollowing(ctx, "user3")
	require.NoError(t, err)
	require.Equal(t, []string{"user2"}, following)

	// Running again changes nothing.
	NewReconcileFollowEdgesCronJob(followerRepo).Do(ctx)
	followers, err = followerRepo.GetFollowers(ctx, "user2")
	require.NoError(t, err)
	require.Len(t, followers, 2)
}

package domain

import (
	"testing"

	"github.com/findme-app/backend/internal/client"
	"github.com/findme-app/backend/internal/entity"
	"github.com/findme-app/backend/internal/model"
	"github.com/findme-app/backend/internal/testutil"
	"github.com/findme-app/backend/pkg/errorx"
	"github.com/stretchr/testify/require"
)

func newFollowTestEnv() (*followDomain, *testutil.InMemoryFollowerRepository, *testutil.InMemoryUserRepository) {
	followerRepo := testutil.NewInMemoryFollowerRepository()
	userRepo := testutil.NewInMemoryUserRepository()
	userRepo.MustCreate("user1")
	userRepo.MustCreate("user2")

	return NewFollowDomain(followerRepo, client.NewLocalUserLookup(userRepo)), followerRepo, userRepo
}

func Test_followDomain_Create(t *testing.T) {
	d, _, _ := newFollowTestEnv()
	ctx := testutil.NewContext()

	_, err := d.Create(ctx, &model.CreateFollowRequestRequest{Requestee: "user1"})
	require.Equal(t, errorx.BadRequest, errorx.CodeOf(err))

	_, err = d.Create(ctx, &model.CreateFollowRequestRequest{Requestee: "nobody"})
	require.Equal(t, errorx.NotFound, errorx.CodeOf(err))

	resp, err := d.Create(ctx, &model.CreateFollowRequestRequest{Requestee: "user2"})
	require.NoError(t, err)
	require.Equal(t, "user1", resp.Requester)
	require.Equal(t, "user2", resp.Requestee)
	require.Equal(t, string(entity.FollowStatusPending), resp.Status)

	// A second request while the first is still pending is refused.
	_, err = d.Create(ctx, &model.CreateFollowRequestRequest{Requestee: "user2"})
	require.Equal(t, errorx.AlreadyExists, errorx.CodeOf(err))
}

func Test_followDomain_AcceptLifecycle(t *testing.T) {
	d, _, _ := newFollowTestEnv()
	requesterCtx := testutil.NewContext()
	requesteeCtx := testutil.NewContextWithUserID("user2")

	_, err := d.Create(requesterCtx, &model.CreateFollowRequestRequest{Requestee: "user2"})
	require.NoError(t, err)

	received, err := d.GetReceived(requesteeCtx, &model.GetReceivedFollowRequestsRequest{})
	require.NoError(t, err)
	require.Len(t, received.Requests, 1)
	require.Equal(t, "user1", received.Requests[0].Requester)

	resp, err := d.Accept(requesteeCtx, &model.AcceptFollowRequestRequest{Requester: "user1"})
	require.NoError(t, err)
	require.Equal(t, string(entity.FollowStatusAccepted), resp.Status)

	// Accepting resolves the request, the pending list is empty now.
	received, err = d.GetReceived(requesteeCtx, &model.GetReceivedFollowRequestsRequest{})
	require.NoError(t, err)
	require.Empty(t, received.Requests)

	// Both sides of the relationship are visible.
	connections, err := d.GetConnections(requesteeCtx, &model.GetConnectionsRequest{UserID: "user2"})
	require.NoError(t, err)
	require.Equal(t, []string{"user1"}, connections.Followers)
	require.Empty(t, connections.Following)

	connections, err = d.GetConnections(requesterCtx, &model.GetConnectionsRequest{UserID: "user1"})
	require.NoError(t, err)
	require.Empty(t, connections.Followers)
	require.Equal(t, []string{"user2"}, connections.Following)

	// A resolved request cannot be accepted again.
	_, err = d.Accept(requesteeCtx, &model.AcceptFollowRequestRequest{Requester: "user1"})
	require.Equal(t, errorx.BadRequest, errorx.CodeOf(err))
}

func Test_followDomain_DeclineAllowsNewRequest(t *testing.T) {
	d, _, _ := newFollowTestEnv()
	requesterCtx := testutil.NewContext()
	requesteeCtx := testutil.NewContextWithUserID("user2")

	_, err := d.Create(requesterCtx, &model.CreateFollowRequestRequest{Requestee: "user2"})
	require.NoError(t, err)

	resp, err := d.Decline(requesteeCtx, &model.DeclineFollowRequestRequest{Requester: "user1"})
	require.NoError(t, err)
	require.Equal(t, string(entity.FollowStatusDeclined), resp.Status)

	// Declining adds no relationship.
	connections, err := d.GetConnections(requesteeCtx, &model.GetConnectionsRequest{UserID: "user2"})
	require.NoError(t, err)
	require.Empty(t, connections.Followers)

	// A declined pair can request again.
	_, err = d.Create(requesterCtx, &model.CreateFollowRequestRequest{Requestee: "user2"})
	require.NoError(t, err)
}

func Test_followDomain_AcceptWithoutRequest(t *testing.T) {
	d, _, _ := newFollowTestEnv()
	ctx := testutil.NewContextWithUserID("user2")

	_, err := d.Accept(ctx, &model.AcceptFollowRequestRequest{Requester: "user1"})
	require.Equal(t, errorx.BadRequest, errorx.CodeOf(err))

	_, err = d.Decline(ctx, &model.DeclineFollowRequestRequest{Requester: "user1"})
	require.Equal(t, errorx.BadRequest, errorx.CodeOf(err))
}

func Test_followDomain_AcceptSurvivesEdgeWriteFailure(t *testing.T) {
	d, followerRepo, _ := newFollowTestEnv()
	requesterCtx := testutil.NewContext()
	requesteeCtx := testutil.NewContextWithUserID("user2")

	_, err := d.Create(requesterCtx, &model.CreateFollowRequestRequest{Requestee: "user2"})
	require.NoError(t, err)

	followerRepo.EdgeFailures = 1
	resp, err := d.Accept(requesteeCtx, &model.AcceptFollowRequestRequest{Requester: "user1"})
	require.NoError(t, err)
	require.Equal(t, string(entity.FollowStatusAccepted), resp.Status)

	// The edges are missing until the reconcile job runs.
	connections, err := d.GetConnections(requesteeCtx, &model.GetConnectionsRequest{UserID: "user2"})
	require.NoError(t, err)
	require.Empty(t, connections.Followers)
}

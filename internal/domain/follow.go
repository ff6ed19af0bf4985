package domain

import (
	"context"
	"errors"
	"time"

	"github.com/findme-app/backend/internal/client"
	"github.com/findme-app/backend/internal/entity"
	"github.com/findme-app/backend/internal/model"
	"github.com/findme-app/backend/internal/repository"
	"github.com/findme-app/backend/pkg/errorx"
	"github.com/findme-app/backend/pkg/xcontext"
)

type FollowDomain interface {
	Create(context.Context, *model.CreateFollowRequestRequest) (*model.CreateFollowRequestResponse, error)
	Accept(context.Context, *model.AcceptFollowRequestRequest) (*model.AcceptFollowRequestResponse, error)
	Decline(context.Context, *model.DeclineFollowRequestRequest) (*model.DeclineFollowRequestResponse, error)
	GetReceived(context.Context, *model.GetReceivedFollowRequestsRequest) (*model.GetReceivedFollowRequestsResponse, error)
	GetConnections(context.Context, *model.GetConnectionsRequest) (*model.GetConnectionsResponse, error)
}

type followDomain struct {
	followerRepo repository.FollowerRepository
	userLookup   client.UserLookup
}

func NewFollowDomain(
	followerRepo repository.FollowerRepository,
	userLookup client.UserLookup,
) *followDomain {
	return &followDomain{
		followerRepo: followerRepo,
		userLookup:   userLookup,
	}
}

func (d *followDomain) Create(
	ctx context.Context, req *model.CreateFollowRequestRequest,
) (*model.CreateFollowRequestResponse, error) {
	requesterID := xcontext.RequestUserID(ctx)

	if req.Requestee == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty requestee")
	}

	if req.Requestee == requesterID {
		return nil, errorx.New(errorx.BadRequest, "Can not follow yourself")
	}

	exists, err := d.userLookup.Exists(ctx, req.Requestee)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check existence of %s: %v", req.Requestee, err)
		return nil, errorx.Unknown
	}

	if !exists {
		return nil, errorx.New(errorx.NotFound, "Not found user %s", req.Requestee)
	}

	request := &entity.FollowRequest{
		Requester: requesterID,
		Requestee: req.Requestee,
		Status:    entity.FollowStatusPending,
		CreatedAt: time.Now().Unix(),
	}

	if err := d.followerRepo.CreateRequest(ctx, request); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, errorx.New(errorx.AlreadyExists,
				"A follow request to %s is already pending", req.Requestee)
		}

		xcontext.Logger(ctx).Errorf("Cannot create follow request: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.CreateFollowRequestResponse(model.ConvertFollowRequest(request))
	return &resp, nil
}

func (d *followDomain) Accept(
	ctx context.Context, req *model.AcceptFollowRequestRequest,
) (*model.AcceptFollowRequestResponse, error) {
	requesteeID := xcontext.RequestUserID(ctx)

	if req.Requester == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty requester")
	}

	updated, err := d.followerRepo.UpdateRequestStatus(
		ctx, req.Requester, requesteeID, entity.FollowStatusAccepted)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errorx.New(errorx.BadRequest,
				"No pending follow request from %s", req.Requester)
		}

		xcontext.Logger(ctx).Errorf("Cannot accept follow request: %v", err)
		return nil, errorx.Unknown
	}

	// The request is accepted at this point. A failed edge write leaves the
	// graph behind the request row until the reconcile job heals it.
	if err := d.followerRepo.CreateEdges(ctx, req.Requester, requesteeID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot create follower edges of %s -> %s: %v",
			req.Requester, requesteeID, err)
	}

	resp := model.AcceptFollowRequestResponse(model.ConvertFollowRequest(updated))
	return &resp, nil
}

func (d *followDomain) Decline(
	ctx context.Context, req *model.DeclineFollowRequestRequest,
) (*model.DeclineFollowRequestResponse, error) {
	requesteeID := xcontext.RequestUserID(ctx)

	if req.Requester == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty requester")
	}

	updated, err := d.followerRepo.UpdateRequestStatus(
		ctx, req.Requester, requesteeID, entity.FollowStatusDeclined)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errorx.New(errorx.BadRequest,
				"No pending follow request from %s", req.Requester)
		}

		xcontext.Logger(ctx).Errorf("Cannot decline follow request: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.DeclineFollowRequestResponse(model.ConvertFollowRequest(updated))
	return &resp, nil
}

func (d *followDomain) GetReceived(
	ctx context.Context, req *model.GetReceivedFollowRequestsRequest,
) (*model.GetReceivedFollowRequestsResponse, error) {
	requesteeID := xcontext.RequestUserID(ctx)

	pending, err := d.followerRepo.GetPendingByRequestee(ctx, requesteeID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get received follow requests of %s: %v", requesteeID, err)
		return nil, errorx.Unknown
	}

	requests := []model.FollowRequest{}
	for i := range pending {
		requests = append(requests, model.ConvertFollowRequest(&pending[i]))
	}

	return &model.GetReceivedFollowRequestsResponse{Requests: requests}, nil
}

func (d *followDomain) GetConnections(
	ctx context.Context, req *model.GetConnectionsRequest,
) (*model.GetConnectionsResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	followers, err := d.followerRepo.GetFollowers(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get followers of %s: %v", userID, err)
		return nil, errorx.Unknown
	}

	following, err := d.followerRepo.GetFollowing(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get following of %s: %v", userID, err)
		return nil, errorx.Unknown
	}

	return &model.GetConnectionsResponse{
		Followers: d.displayNames(ctx, followers),
		Following: d.displayNames(ctx, following),
	}, nil
}

// displayNames resolves raw identities into presentable names, falling back
// to the identity itself when a lookup fails.
func (d *followDomain) displayNames(ctx context.Context, userIDs []string) []string {
	names := []string{}
	for _, id := range userIDs {
		name, err := d.userLookup.GetDisplayName(ctx, id)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot resolve display name of %s: %v", id, err)
			name = id
		}

		names = append(names, name)
	}

	return names
}

package domain

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/findme-app/backend/internal/client"
	"github.com/findme-app/backend/internal/entity"
	"github.com/findme-app/backend/internal/model"
	"github.com/findme-app/backend/internal/repository"
	"github.com/findme-app/backend/pkg/errorx"
	"github.com/findme-app/backend/pkg/geoutil"
	"github.com/findme-app/backend/pkg/storage"
	"github.com/findme-app/backend/pkg/xcontext"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

type RiddleDomain interface {
	Create(context.Context, *model.CreateRiddleRequest) (*model.CreateRiddleResponse, error)
	Get(context.Context, *model.GetRiddleRequest) (*model.GetRiddleResponse, error)
	GetByCreator(context.Context, *model.GetRiddlesByCreatorRequest) (*model.GetRiddlesByCreatorResponse, error)
	GetByArena(context.Context, *model.GetArenaRiddlesRequest) (*model.GetArenaRiddlesResponse, error)
	GetFeed(context.Context, *model.GetFeedRequest) (*model.GetFeedResponse, error)
	GetSolved(context.Context, *model.GetSolvedRiddlesRequest) (*model.GetSolvedRiddlesResponse, error)
	Rate(context.Context, *model.RateRiddleRequest) (*model.RateRiddleResponse, error)
	Guess(context.Context, *model.GuessRiddleRequest) (*model.GuessRiddleResponse, error)
	Comment(context.Context, *model.CommentRiddleRequest) (*model.CommentRiddleResponse, error)
	Delete(context.Context, *model.DeleteRiddleRequest) (*model.DeleteRiddleResponse, error)
}

type riddleDomain struct {
	riddleRepo  repository.RiddleRepository
	userClient  client.UserServiceClient
	blobStorage storage.Storage
	leaderboard LeaderboardDomain
}

func NewRiddleDomain(
	riddleRepo repository.RiddleRepository,
	userClient client.UserServiceClient,
	blobStorage storage.Storage,
	leaderboard LeaderboardDomain,
) *riddleDomain {
	return &riddleDomain{
		riddleRepo:  riddleRepo,
		userClient:  userClient,
		blobStorage: blobStorage,
		leaderboard: leaderboard,
	}
}

func (d *riddleDomain) Create(
	ctx context.Context, req *model.CreateRiddleRequest,
) (*model.CreateRiddleResponse, error) {
	creatorID := xcontext.RequestUserID(ctx)

	location, err := entity.NewCoordinate(req.Location)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "%s", err.Error())
	}

	image, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Cannot decode image")
	}

	if len(image) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty image")
	}

	id := uuid.NewString()
	_, err = d.blobStorage.Upload(ctx, &storage.UploadObject{
		Key:  imageKey(id),
		Mime: "image/png",
		Data: image,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload image of riddle %s: %v", id, err)
		return nil, errorx.Unknown
	}

	riddle := entity.NewRiddle(id, creatorID, location, req.Arenas, time.Now().Unix())
	if err := d.riddleRepo.Create(ctx, riddle); err != nil {
		// The image is already stored at this point. A failed record write
		// leaves an orphaned blob behind.
		xcontext.Logger(ctx).Errorf("Cannot create riddle %s: %v", id, err)
		return nil, errorx.Unknown
	}

	return &model.CreateRiddleResponse{
		ID:      id,
		Message: "Location riddle created successfully",
	}, nil
}

func (d *riddleDomain) Get(
	ctx context.Context, req *model.GetRiddleRequest,
) (*model.GetRiddleResponse, error) {
	riddle, err := d.loadRiddle(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	image, err := d.blobStorage.Download(ctx, imageKey(riddle.ID))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot download image of riddle %s: %v", riddle.ID, err)
		return nil, errorx.Unknown
	}

	resp := model.GetRiddleResponse(
		model.ConvertRiddle(riddle, xcontext.RequestUserID(ctx), image))
	return &resp, nil
}

func (d *riddleDomain) GetByCreator(
	ctx context.Context, req *model.GetRiddlesByCreatorRequest,
) (*model.GetRiddlesByCreatorResponse, error) {
	if req.CreatorID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	riddles, err := d.riddleRepo.GetByCreator(ctx, req.CreatorID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get riddles of %s: %v", req.CreatorID, err)
		return nil, errorx.Unknown
	}

	if len(riddles) == 0 {
		return nil, errorx.New(errorx.NotFound, "No location riddles found for user %s", req.CreatorID)
	}

	views, err := d.projectAll(ctx, riddles)
	if err != nil {
		return nil, err
	}

	return &model.GetRiddlesByCreatorResponse{Riddles: views}, nil
}

func (d *riddleDomain) GetByArena(
	ctx context.Context, req *model.GetArenaRiddlesRequest,
) (*model.GetArenaRiddlesResponse, error) {
	if req.Arena == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty arena")
	}

	riddles, err := d.riddleRepo.GetByArena(ctx, req.Arena)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get riddles of arena %s: %v", req.Arena, err)
		return nil, errorx.Unknown
	}

	if len(riddles) == 0 {
		return nil, errorx.New(errorx.NotFound, "No location riddles found for arena %s", req.Arena)
	}

	views, err := d.projectAll(ctx, riddles)
	if err != nil {
		return nil, err
	}

	return &model.GetArenaRiddlesResponse{Riddles: views}, nil
}

func (d *riddleDomain) GetFeed(
	ctx context.Context, req *model.GetFeedRequest,
) (*model.GetFeedResponse, error) {
	viewerID := xcontext.RequestUserID(ctx)

	following, err := d.userClient.GetFollowing(ctx, viewerID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get following list of %s: %v", viewerID, err)
		return nil, errorx.Unknown
	}

	feed := []entity.Riddle{}
	for _, followee := range following {
		riddles, err := d.riddleRepo.GetByCreator(ctx, followee)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get riddles of %s: %v", followee, err)
			return nil, errorx.Unknown
		}

		// Followees without riddles simply contribute nothing.
		feed = append(feed, riddles...)
	}

	slices.SortFunc(feed, func(a, b entity.Riddle) bool {
		return a.CreatedAt > b.CreatedAt
	})

	views, err := d.projectAll(ctx, feed)
	if err != nil {
		return nil, err
	}

	return &model.GetFeedResponse{Riddles: views}, nil
}

func (d *riddleDomain) GetSolved(
	ctx context.Context, req *model.GetSolvedRiddlesRequest,
) (*model.GetSolvedRiddlesResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	scores, err := d.userClient.GetScores(ctx, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get scores of %s: %v", req.UserID, err)
		return nil, errorx.Unknown
	}

	solved := []entity.Riddle{}
	for _, score := range scores {
		riddle, err := d.riddleRepo.GetByID(ctx, score.RiddleID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// The riddle was deleted after it was solved, the score entry
				// still references it.
				xcontext.Logger(ctx).Warnf("Solved riddle %s no longer exists", score.RiddleID)
				continue
			}

			xcontext.Logger(ctx).Errorf("Cannot get riddle %s: %v", score.RiddleID, err)
			return nil, errorx.Unknown
		}

		solved = append(solved, *riddle)
	}

	views, err := d.projectAll(ctx, solved)
	if err != nil {
		return nil, err
	}

	return &model.GetSolvedRiddlesResponse{Riddles: views}, nil
}

func (d *riddleDomain) Rate(
	ctx context.Context, req *model.RateRiddleRequest,
) (*model.RateRiddleResponse, error) {
	raterID := xcontext.RequestUserID(ctx)

	riddle, err := d.loadRiddle(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if riddle.CreatorID == raterID {
		return nil, errorx.New(errorx.PermissionDenied, "Can not rate your own location riddle")
	}

	if riddle.IsRatedBy(raterID) {
		return nil, errorx.New(errorx.AlreadyExists, "You have already rated this location riddle")
	}

	rating, err := entity.NewRating(raterID, req.Value)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "%s", err.Error())
	}

	updated, err := d.riddleRepo.AddRating(ctx, req.ID, rating)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add rating of riddle %s: %v", req.ID, err)
		return nil, errorx.Unknown
	}

	resp := model.RateRiddleResponse(model.ConvertRiddle(updated, raterID, nil))
	return &resp, nil
}

func (d *riddleDomain) Guess(
	ctx context.Context, req *model.GuessRiddleRequest,
) (*model.GuessRiddleResponse, error) {
	guesserID := xcontext.RequestUserID(ctx)

	riddle, err := d.loadRiddle(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if riddle.CreatorID == guesserID {
		return nil, errorx.New(errorx.PermissionDenied, "Can not guess your own location riddle")
	}

	if riddle.IsGuessedBy(guesserID) {
		return nil, errorx.New(errorx.AlreadyExists, "You have already guessed this location riddle")
	}

	location, err := entity.NewCoordinate(req.Location)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "%s", err.Error())
	}

	updated, err := d.riddleRepo.AddGuess(ctx, req.ID, entity.Guess{
		UserID:   guesserID,
		Location: location,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add guess of riddle %s: %v", req.ID, err)
		return nil, errorx.Unknown
	}

	distance := geoutil.DistanceKm(riddle.Location.Point(), location.Point())
	score := geoutil.Score(distance)

	// The guess already counts, score bookkeeping is best effort.
	if err := d.userClient.WriteScore(ctx, guesserID, req.ID, score); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot write score of %s for riddle %s: %v", guesserID, req.ID, err)
	}

	if err := d.leaderboard.Record(ctx, guesserID, score); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot record leaderboard score of %s: %v", guesserID, err)
	}

	return &model.GuessRiddleResponse{
		Riddle: model.ConvertRiddle(updated, guesserID, nil),
		GuessResult: model.GuessResult{
			Distance:      distance,
			ReceivedScore: score,
		},
	}, nil
}

func (d *riddleDomain) Comment(
	ctx context.Context, req *model.CommentRiddleRequest,
) (*model.CommentRiddleResponse, error) {
	commenterID := xcontext.RequestUserID(ctx)

	if req.Text == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty comment")
	}

	if _, err := d.loadRiddle(ctx, req.ID); err != nil {
		return nil, err
	}

	updated, err := d.riddleRepo.AddComment(ctx, req.ID, entity.Comment{
		UserID: commenterID,
		Text:   req.Text,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add comment of riddle %s: %v", req.ID, err)
		return nil, errorx.Unknown
	}

	resp := model.CommentRiddleResponse(model.ConvertRiddle(updated, commenterID, nil))
	return &resp, nil
}

func (d *riddleDomain) Delete(
	ctx context.Context, req *model.DeleteRiddleRequest,
) (*model.DeleteRiddleResponse, error) {
	requesterID := xcontext.RequestUserID(ctx)

	riddle, err := d.loadRiddle(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if riddle.CreatorID != requesterID {
		return nil, errorx.New(errorx.PermissionDenied, "Only the creator can delete a location riddle")
	}

	if err := d.blobStorage.Delete(ctx, imageKey(riddle.ID)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete image of riddle %s: %v", riddle.ID, err)
		return nil, errorx.Unknown
	}

	if err := d.riddleRepo.Delete(ctx, riddle.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete riddle %s: %v", riddle.ID, err)
		return nil, errorx.Unknown
	}

	return &model.DeleteRiddleResponse{Message: "Location riddle deleted successfully"}, nil
}

func (d *riddleDomain) loadRiddle(ctx context.Context, id string) (*entity.Riddle, error) {
	if id == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty location riddle id")
	}

	riddle, err := d.riddleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found location riddle %s", id)
		}

		xcontext.Logger(ctx).Errorf("Cannot get riddle %s: %v", id, err)
		return nil, errorx.Unknown
	}

	return riddle, nil
}

func (d *riddleDomain) projectAll(
	ctx context.Context, riddles []entity.Riddle,
) ([]model.Riddle, error) {
	viewerID := xcontext.RequestUserID(ctx)

	views := []model.Riddle{}
	for i := range riddles {
		image, err := d.blobStorage.Download(ctx, imageKey(riddles[i].ID))
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot download image of riddle %s: %v", riddles[i].ID, err)
			return nil, errorx.Unknown
		}

		views = append(views, model.ConvertRiddle(&riddles[i], viewerID, image))
	}

	return views, nil
}

func imageKey(riddleID string) string {
	return fmt.Sprintf("location-riddles/%s.png", riddleID)
}

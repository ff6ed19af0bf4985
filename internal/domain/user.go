package domain

import (
	"context"
	"errors"

	"github.com/findme-app/backend/internal/entity"
	"github.com/findme-app/backend/internal/model"
	"github.com/findme-app/backend/internal/repository"
	"github.com/findme-app/backend/pkg/errorx"
	"github.com/findme-app/backend/pkg/xcontext"
)

type UserDomain interface {
	Register(context.Context, *model.RegisterUserRequest) (*model.RegisterUserResponse, error)
	Get(context.Context, *model.GetUserRequest) (*model.GetUserResponse, error)
	Update(context.Context, *model.UpdateUserRequest) (*model.UpdateUserResponse, error)
	Search(context.Context, *model.SearchUsersRequest) (*model.SearchUsersResponse, error)
	AddScore(context.Context, *model.AddScoreRequest) (*model.AddScoreResponse, error)
	GetScores(context.Context, *model.GetUserScoresRequest) (*model.GetUserScoresResponse, error)
}

type userDomain struct {
	userRepo repository.UserRepository
}

func NewUserDomain(userRepo repository.UserRepository) *userDomain {
	return &userDomain{userRepo: userRepo}
}

func (d *userDomain) Register(
	ctx context.Context, req *model.RegisterUserRequest,
) (*model.RegisterUserResponse, error) {
	username := xcontext.RequestUserID(ctx)

	if req.FirstName == "" || req.LastName == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty first or last name")
	}

	user := entity.NewUser(username, req.FirstName, req.LastName, req.Bio)
	if err := d.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, errorx.New(errorx.AlreadyExists, "User %s already exists", username)
		}

		xcontext.Logger(ctx).Errorf("Cannot create user %s: %v", username, err)
		return nil, errorx.Unknown
	}

	resp := model.RegisterUserResponse(model.ConvertUser(user))
	return &resp, nil
}

func (d *userDomain) Get(
	ctx context.Context, req *model.GetUserRequest,
) (*model.GetUserResponse, error) {
	username := req.Username
	if username == "" {
		username = xcontext.RequestUserID(ctx)
	}

	user, err := d.loadUser(ctx, username)
	if err != nil {
		return nil, err
	}

	resp := model.GetUserResponse(model.ConvertUser(user))
	return &resp, nil
}

func (d *userDomain) Update(
	ctx context.Context, req *model.UpdateUserRequest,
) (*model.UpdateUserResponse, error) {
	username := xcontext.RequestUserID(ctx)

	if req.FirstName == "" || req.LastName == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty first or last name")
	}

	user, err := d.loadUser(ctx, username)
	if err != nil {
		return nil, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Bio = req.Bio

	if err := d.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user %s", username)
		}

		xcontext.Logger(ctx).Errorf("Cannot update user %s: %v", username, err)
		return nil, errorx.Unknown
	}

	resp := model.UpdateUserResponse(model.ConvertUser(user))
	return &resp, nil
}

func (d *userDomain) Search(
	ctx context.Context, req *model.SearchUsersRequest,
) (*model.SearchUsersResponse, error) {
	if req.UsernamePrefix == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty username prefix")
	}

	found, err := d.userRepo.SearchByPrefix(ctx, req.UsernamePrefix)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search users by %s: %v", req.UsernamePrefix, err)
		return nil, errorx.Unknown
	}

	users := []model.User{}
	for i := range found {
		users = append(users, model.ConvertUser(&found[i]))
	}

	return &model.SearchUsersResponse{Users: users}, nil
}

func (d *userDomain) AddScore(
	ctx context.Context, req *model.AddScoreRequest,
) (*model.AddScoreResponse, error) {
	username := xcontext.RequestUserID(ctx)

	if req.RiddleID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty location riddle id")
	}

	if req.Score < 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow negative score")
	}

	updated, err := d.userRepo.AddScore(ctx, username, entity.Score{
		RiddleID: req.RiddleID,
		Value:    req.Score,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user %s", username)
		}

		xcontext.Logger(ctx).Errorf("Cannot add score of %s: %v", username, err)
		return nil, errorx.Unknown
	}

	resp := model.AddScoreResponse(model.ConvertUser(updated))
	return &resp, nil
}

func (d *userDomain) GetScores(
	ctx context.Context, req *model.GetUserScoresRequest,
) (*model.GetUserScoresResponse, error) {
	username := req.Username
	if username == "" {
		username = xcontext.RequestUserID(ctx)
	}

	user, err := d.loadUser(ctx, username)
	if err != nil {
		return nil, err
	}

	scores := []model.UserScore{}
	for _, score := range user.Scores {
		scores = append(scores, model.UserScore{
			RiddleID: score.RiddleID,
			Score:    score.Value,
		})
	}

	return &model.GetUserScoresResponse{Scores: scores}, nil
}

func (d *userDomain) loadUser(ctx context.Context, username string) (*entity.User, error) {
	if username == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty username")
	}

	user, err := d.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user %s", username)
		}

		xcontext.Logger(ctx).Errorf("Cannot get user %s: %v", username, err)
		return nil, errorx.Unknown
	}

	return user, nil
}

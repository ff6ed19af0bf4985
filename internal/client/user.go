package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/findme-app/backend/internal/model"
	"github.com/findme-app/backend/pkg/api"
	"github.com/findme-app/backend/pkg/xcontext"
	"github.com/mitchellh/mapstructure"
)

// UserLookup is the part of the user service consumed by the follow
// domain: existence checks and display identity resolution.
type UserLookup interface {
	Exists(ctx context.Context, username string) (bool, error)
	GetDisplayName(ctx context.Context, username string) (string, error)
}

// UserServiceClient talks to the user microservice. The riddle domain uses
// it to resolve the social graph and to write back scores.
type UserServiceClient interface {
	UserLookup

	GetFollowing(ctx context.Context, username string) ([]string, error)
	GetScores(ctx context.Context, username string) ([]model.UserScore, error)
	WriteScore(ctx context.Context, username, riddleID string, score float64) error
}

type userServiceClient struct {
	apiGenerator api.Generator
}

func NewUserServiceClient(endpoints ...string) *userServiceClient {
	return &userServiceClient{apiGenerator: api.NewGenerator(endpoints...)}
}

func NewUserServiceClientWithGenerator(generator api.Generator) *userServiceClient {
	return &userServiceClient{apiGenerator: generator}
}

type connectionsBody struct {
	Followers []string `mapstructure:"followers"`
	Following []string `mapstructure:"following"`
}

type scoresBody struct {
	Scores []struct {
		RiddleID string  `mapstructure:"location_riddle_id"`
		Score    float64 `mapstructure:"score"`
	} `mapstructure:"scores"`
}

type userBody struct {
	Username string `mapstructure:"username"`
}

func (c *userServiceClient) GetFollowing(ctx context.Context, username string) ([]string, error) {
	body, err := c.getJSON(ctx, "/users/%s/follow", username)
	if err != nil {
		return nil, err
	}

	connections := connectionsBody{}
	if err := mapstructure.Decode(body, &connections); err != nil {
		return nil, err
	}

	return connections.Following, nil
}

func (c *userServiceClient) GetScores(
	ctx context.Context, username string,
) ([]model.UserScore, error) {
	body, err := c.getJSON(ctx, "/users/%s/scores", username)
	if err != nil {
		return nil, err
	}

	scores := scoresBody{}
	if err := mapstructure.Decode(body, &scores); err != nil {
		return nil, err
	}

	result := []model.UserScore{}
	for _, s := range scores.Scores {
		result = append(result, model.UserScore{RiddleID: s.RiddleID, Score: s.Score})
	}

	return result, nil
}

func (c *userServiceClient) WriteScore(
	ctx context.Context, username, riddleID string, score float64,
) error {
	resp, err := c.apiGenerator.New("/users/%s/score", username).
		Body(api.JSON{
			"location_riddle_id": riddleID,
			"score":              score,
		}).
		POST(ctx)
	if err != nil {
		return err
	}

	if resp.Code != http.StatusOK {
		return fmt.Errorf("invalid status code %d when writing score", resp.Code)
	}

	return nil
}

func (c *userServiceClient) Exists(ctx context.Context, username string) (bool, error) {
	resp, err := c.apiGenerator.New("/users/%s", username).GET(ctx)
	if err != nil {
		return false, err
	}

	switch resp.Code {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	}

	return false, fmt.Errorf("invalid status code %d when checking user", resp.Code)
}

func (c *userServiceClient) GetDisplayName(ctx context.Context, username string) (string, error) {
	body, err := c.getJSON(ctx, "/users/%s", username)
	if err != nil {
		return "", err
	}

	user := userBody{}
	if err := mapstructure.Decode(body, &user); err != nil {
		return "", err
	}

	if user.Username == "" {
		return "", errors.New("cannot get user info")
	}

	return user.Username, nil
}

func (c *userServiceClient) getJSON(
	ctx context.Context, path string, args ...any,
) (api.JSON, error) {
	resp, err := c.apiGenerator.New(path, args...).GET(ctx)
	if err != nil {
		return nil, err
	}

	if resp.Code != http.StatusOK {
		xcontext.Logger(ctx).Errorf("Invalid status code: %v", resp.Body)
		return nil, fmt.Errorf("invalid status code %d", resp.Code)
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return nil, errors.New("invalid body format")
	}

	return body, nil
}

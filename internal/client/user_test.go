package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/findme-app/backend/pkg/api"
	"github.com/stretchr/testify/require"
)

func TestUserServiceClientGetFollowing(t *testing.T) {
	generator := &api.MockAPIGenerator{
		MockClient: api.MockAPIClient{
			GETFunc: func(ctx context.Context, opts ...api.Opt) (*api.Response, error) {
				return &api.Response{
					Code: http.StatusOK,
					Body: api.JSON{
						"followers": []any{"user9"},
						"following": []any{"user2", "user3"},
					},
				}, nil
			},
		},
	}

	c := NewUserServiceClientWithGenerator(generator)
	following, err := c.GetFollowing(context.Background(), "user1")
	require.NoError(t, err)
	require.Equal(t, []string{"user2", "user3"}, following)
	require.Equal(t, "/users/user1/follow", generator.LastPath)
}

func TestUserServiceClientGetScores(t *testing.T) {
	generator := &api.MockAPIGenerator{
		MockClient: api.MockAPIClient{
			GETFunc: func(ctx context.Context, opts ...api.Opt) (*api.Response, error) {
				return &api.Response{
					Code: http.StatusOK,
					Body: api.JSON{
						"scores": []any{
							map[string]any{"location_riddle_id": "riddle1", "score": 9000.0},
						},
					},
				}, nil
			},
		},
	}

	c := NewUserServiceClientWithGenerator(generator)
	scores, err := c.GetScores(context.Background(), "user1")
	require.NoError(t, err)
	require.Len(t, scores, 1)
	require.Equal(t, "riddle1", scores[0].RiddleID)
	require.Equal(t, 9000.0, scores[0].Score)
}

func TestUserServiceClientExists(t *testing.T) {
	code := http.StatusOK
	generator := &api.MockAPIGenerator{
		MockClient: api.MockAPIClient{
			GETFunc: func(ctx context.Context, opts ...api.Opt) (*api.Response, error) {
				return &api.Response{Code: code, Body: api.JSON{"username": "user1"}}, nil
			},
		},
	}

	c := NewUserServiceClientWithGenerator(generator)
	exists, err := c.Exists(context.Background(), "user1")
	require.NoError(t, err)
	require.True(t, exists)

	code = http.StatusNotFound
	exists, err = c.Exists(context.Background(), "user1")
	require.NoError(t, err)
	require.False(t, exists)

	code = http.StatusInternalServerError
	_, err = c.Exists(context.Background(), "user1")
	require.Error(t, err)
}

func TestUserServiceClientWriteScore(t *testing.T) {
	var gotBody api.Body
	generator := &api.MockAPIGenerator{
		MockClient: api.MockAPIClient{
			POSTFunc: func(ctx context.Context, opts ...api.Opt) (*api.Response, error) {
				return &api.Response{Code: http.StatusOK}, nil
			},
		},
	}
	generator.MockClient.BodyFunc = func(body api.Body) api.Client {
		gotBody = body
		return &generator.MockClient
	}

	c := NewUserServiceClientWithGenerator(generator)
	require.NoError(t, c.WriteScore(context.Background(), "user1", "riddle1", 9000))
	require.Equal(t, "/users/user1/score", generator.LastPath)

	body, ok := gotBody.(api.JSON)
	require.True(t, ok)
	riddleID, err := body.GetString("location_riddle_id")
	require.NoError(t, err)
	require.Equal(t, "riddle1", riddleID)
}

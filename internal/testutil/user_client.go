package testutil

import (
	"context"
	"sync"

	"github.com/findme-app/backend/internal/model"
)

// MockUserServiceClient is an in-memory user service. The Func fields
// override single calls to inject failures.
type MockUserServiceClient struct {
	ExistsFunc         func(ctx context.Context, username string) (bool, error)
	GetDisplayNameFunc func(ctx context.Context, username string) (string, error)
	GetFollowingFunc   func(ctx context.Context, username string) ([]string, error)
	GetScoresFunc      func(ctx context.Context, username string) ([]model.UserScore, error)
	WriteScoreFunc     func(ctx context.Context, username, riddleID string, score float64) error

	mutex     sync.Mutex
	following map[string][]string
	scores    map[string][]model.UserScore
}

func NewMockUserServiceClient() *MockUserServiceClient {
	return &MockUserServiceClient{
		following: make(map[string][]string),
		scores:    make(map[string][]model.UserScore),
	}
}

func (m *MockUserServiceClient) SetFollowing(username string, following ...string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.following[username] = following
}

func (m *MockUserServiceClient) Exists(ctx context.Context, username string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, username)
	}

	return true, nil
}

func (m *MockUserServiceClient) GetDisplayName(
	ctx context.Context, username string,
) (string, error) {
	if m.GetDisplayNameFunc != nil {
		return m.GetDisplayNameFunc(ctx, username)
	}

	return username, nil
}

func (m *MockUserServiceClient) GetFollowing(
	ctx context.Context, username string,
) ([]string, error) {
	if m.GetFollowingFunc != nil {
		return m.GetFollowingFunc(ctx, username)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.following[username], nil
}

func (m *MockUserServiceClient) GetScores(
	ctx context.Context, username string,
) ([]model.UserScore, error) {
	if m.GetScoresFunc != nil {
		return m.GetScoresFunc(ctx, username)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.scores[username], nil
}

func (m *MockUserServiceClient) WriteScore(
	ctx context.Context, username, riddleID string, score float64,
) error {
	if m.WriteScoreFunc != nil {
		return m.WriteScoreFunc(ctx, username, riddleID, score)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.scores[username] = append(m.scores[username], model.UserScore{
		RiddleID: riddleID,
		Score:    score,
	})
	return nil
}

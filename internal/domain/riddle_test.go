package domain

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/findme-app/backend/internal/entity"
	"github.com/findme-app/backend/internal/model"
	"github.com/findme-app/backend/internal/testutil"
	"github.com/findme-app/backend/pkg/errorx"
	"github.com/findme-app/backend/pkg/storage"
	"github.com/stretchr/testify/require"
)

type riddleTestEnv struct {
	domain      *riddleDomain
	riddleRepo  *testutil.InMemoryRiddleRepository
	userClient  *testutil.MockUserServiceClient
	blobStorage *testutil.MockStorage
	redisClient *testutil.MockRedisClient
}

func newRiddleTestEnv() *riddleTestEnv {
	riddleRepo := testutil.NewInMemoryRiddleRepository()
	userClient := testutil.NewMockUserServiceClient()
	blobStorage := testutil.NewMockStorage()
	redisClient := testutil.NewMockRedisClient()

	return &riddleTestEnv{
		domain: NewRiddleDomain(
			riddleRepo, userClient, blobStorage, NewLeaderboardDomain(redisClient)),
		riddleRepo:  riddleRepo,
		userClient:  userClient,
		blobStorage: blobStorage,
		redisClient: redisClient,
	}
}

func (env *riddleTestEnv) mustCreate(
	t *testing.T, ctx context.Context, location []float64, arenas ...string,
) string {
	resp, err := env.domain.Create(ctx, &model.CreateRiddleRequest{
		ImageBase64: base64.StdEncoding.EncodeToString([]byte("image-bytes")),
		Location:    location,
		Arenas:      arenas,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

func Test_riddleDomain_CreateAndGet(t *testing.T) {
	env := newRiddleTestEnv()
	creatorCtx := testutil.NewContext()

	id := env.mustCreate(t, creatorCtx, []float64{47.37, 8.54}, "zurich")
	require.True(t, env.blobStorage.Contains(imageKey(id)))

	// The creator gets the solved view including the secret location.
	resp, err := env.domain.Get(creatorCtx, &model.GetRiddleRequest{ID: id})
	require.NoError(t, err)
	require.True(t, resp.Solved)
	require.Equal(t, model.Coordinate{47.37, 8.54}, resp.Location)
	require.Equal(t, base64.StdEncoding.EncodeToString([]byte("image-bytes")), resp.ImageBase64)

	// Everyone else only sees the image.
	resp, err = env.domain.Get(testutil.NewContextWithUserID("user2"), &model.GetRiddleRequest{ID: id})
	require.NoError(t, err)
	require.False(t, resp.Solved)
	require.Empty(t, resp.Location)
	require.NotEmpty(t, resp.ImageBase64)

	_, err = env.domain.Get(creatorCtx, &model.GetRiddleRequest{ID: "no-such-riddle"})
	require.Equal(t, errorx.NotFound, errorx.CodeOf(err))
}

func Test_riddleDomain_CreateValidation(t *testing.T) {
	env := newRiddleTestEnv()
	ctx := testutil.NewContext()

	_, err := env.domain.Create(ctx, &model.CreateRiddleRequest{
		ImageBase64: "not-base64!!",
		Location:    []float64{47.37, 8.54},
	})
	require.Equal(t, errorx.BadRequest, errorx.CodeOf(err))

	_, err = env.domain.Create(ctx, &model.CreateRiddleRequest{
		ImageBase64: "",
		Location:    []float64{47.37, 8.54},
	})
	require.Equal(t, errorx.BadRequest, errorx.CodeOf(err))

	_, err = env.domain.Create(ctx, &model.CreateRiddleRequest{
		ImageBase64: base64.StdEncoding.EncodeToString([]byte("image-bytes")),
		Location:    []float64{47.37},
	})
	require.Equal(t, errorx.BadRequest, errorx.CodeOf(err))
}

func Test_riddleDomain_Guess(t *testing.T) {
	env := newRiddleTestEnv()
	creatorCtx := testutil.NewContext()
	guesserCtx := testutil.NewContextWithUserID("user2")

	id := env.mustCreate(t, creatorCtx, []float64{47.37, 8.54})

	// The creator cannot guess their own riddle.
	_, err := env.domain.Guess(creatorCtx, &model.GuessRiddleRequest{
		ID: id, Location: []float64{47.37, 8.54},
	})
	require.Equal(t, errorx.PermissionDenied, errorx.CodeOf(err))

	// An exact guess earns the full score.
	resp, err := env.domain.Guess(guesserCtx, &model.GuessRiddleRequest{
		ID: id, Location: []float64{47.37, 8.54},
	})
	require.NoError(t, err)
	require.Zero(t, resp.GuessResult.Distance)
	require.Equal(t, 10000.0, resp.GuessResult.ReceivedScore)

	// Guessing solves the riddle for the guesser.
	require.True(t, resp.Riddle.Solved)
	require.Len(t, resp.Riddle.Guesses, 1)

	// The score is written back and recorded on the leaderboard.
	scores, err := env.userClient.GetScores(guesserCtx, "user2")
	require.NoError(t, err)
	require.Len(t, scores, 1)
	require.Equal(t, id, scores[0].RiddleID)

	leaderboardScore, err := env.redisClient.ZScore(guesserCtx, "leaderboard:global", "user2")
	require.NoError(t, err)
	require.Equal(t, 10000.0, leaderboardScore)

	// One guess per user.
	_, err = env.domain.Guess(guesserCtx, &model.GuessRiddleRequest{
		ID: id, Location: []float64{48, 9},
	})
	require.Equal(t, errorx.AlreadyExists, errorx.CodeOf(err))
}

func Test_riddleDomain_GuessSurvivesScoreWriteFailure(t *testing.T) {
	env := newRiddleTestEnv()
	env.userClient.WriteScoreFunc = func(context.Context, string, string, float64) error {
		return errors.New("user service is down")
	}

	id := env.mustCreate(t, testutil.NewContext(), []float64{47.37, 8.54})

	resp, err := env.domain.Guess(testutil.NewContextWithUserID("user2"), &model.GuessRiddleRequest{
		ID: id, Location: []float64{47.37, 8.54},
	})
	require.NoError(t, err)
	require.Equal(t, 10000.0, resp.GuessResult.ReceivedScore)
}

func Test_riddleDomain_Rate(t *testing.T) {
	env := newRiddleTestEnv()
	creatorCtx := testutil.NewContext()
	raterCtx := testutil.NewContextWithUserID("user2")

	id := env.mustCreate(t, creatorCtx, []float64{47.37, 8.54})

	_, err := env.domain.Rate(creatorCtx, &model.RateRiddleRequest{ID: id, Value: 4})
	require.Equal(t, errorx.PermissionDenied, errorx.CodeOf(err))

	_, err = env.domain.Rate(raterCtx, &model.RateRiddleRequest{ID: id, Value: 6})
	require.Equal(t, errorx.BadRequest, errorx.CodeOf(err))

	resp, err := env.domain.Rate(raterCtx, &model.RateRiddleRequest{ID: id, Value: 4})
	require.NoError(t, err)
	require.NotNil(t, resp.AverageRating)
	require.Equal(t, 4.0, *resp.AverageRating)
	require.True(t, resp.IsRatedByUser)

	_, err = env.domain.Rate(raterCtx, &model.RateRiddleRequest{ID: id, Value: 2})
	require.Equal(t, errorx.AlreadyExists, errorx.CodeOf(err))
}

func Test_riddleDomain_Comment(t *testing.T) {
	env := newRiddleTestEnv()
	ctx := testutil.NewContextWithUserID("user2")

	id := env.mustCreate(t, testutil.NewContext(), []float64{47.37, 8.54})

	_, err := env.domain.Comment(ctx, &model.CommentRiddleRequest{ID: id, Text: ""})
	require.Equal(t, errorx.BadRequest, errorx.CodeOf(err))

	_, err = env.domain.Comment(ctx, &model.CommentRiddleRequest{ID: "no-such-riddle", Text: "hi"})
	require.Equal(t, errorx.NotFound, errorx.CodeOf(err))

	resp, err := env.domain.Comment(ctx, &model.CommentRiddleRequest{ID: id, Text: "nice spot"})
	require.NoError(t, err)
	require.Len(t, resp.Comments, 1)
	require.Equal(t, "user2", resp.Comments[0].UserID)
	require.Equal(t, "nice spot", resp.Comments[0].Text)
}

func Test_riddleDomain_Delete(t *testing.T) {
	env := newRiddleTestEnv()
	creatorCtx := testutil.NewContext()

	id := env.mustCreate(t, creatorCtx, []float64{47.37, 8.54})

	_, err := env.domain.Delete(testutil.NewContextWithUserID("user2"), &model.DeleteRiddleRequest{ID: id})
	require.Equal(t, errorx.PermissionDenied, errorx.CodeOf(err))

	_, err = env.domain.Delete(creatorCtx, &model.DeleteRiddleRequest{ID: id})
	require.NoError(t, err)
	require.False(t, env.blobStorage.Contains(imageKey(id)))

	_, err = env.domain.Get(creatorCtx, &model.GetRiddleRequest{ID: id})
	require.Equal(t, errorx.NotFound, errorx.CodeOf(err))
}

func Test_riddleDomain_GetByCreatorAndArena(t *testing.T) {
	env := newRiddleTestEnv()
	creatorCtx := testutil.NewContext()

	env.mustCreate(t, creatorCtx, []float64{47.37, 8.54}, "zurich")
	env.mustCreate(t, creatorCtx, []float64{46.94, 7.44}, "bern")

	resp, err := env.domain.GetByCreator(creatorCtx, &model.GetRiddlesByCreatorRequest{CreatorID: "user1"})
	require.NoError(t, err)
	require.Len(t, resp.Riddles, 2)

	_, err = env.domain.GetByCreator(creatorCtx, &model.GetRiddlesByCreatorRequest{CreatorID: "nobody"})
	require.Equal(t, errorx.NotFound, errorx.CodeOf(err))

	arenaResp, err := env.domain.GetByArena(creatorCtx, &model.GetArenaRiddlesRequest{Arena: "zurich"})
	require.NoError(t, err)
	require.Len(t, arenaResp.Riddles, 1)

	_, err = env.domain.GetByArena(creatorCtx, &model.GetArenaRiddlesRequest{Arena: "atlantis"})
	require.Equal(t, errorx.NotFound, errorx.CodeOf(err))
}

func Test_riddleDomain_GetFeed(t *testing.T) {
	env := newRiddleTestEnv()
	ctx := testutil.NewContext()
	env.userClient.SetFollowing("user1", "user2", "user3", "user4")

	// Seed riddles with distinct creation times, newest belongs to user2.
	now := time.Now().Unix()
	seed := []struct {
		id        string
		creator   string
		createdAt int64
	}{
		{"riddle-old", "user3", now - 100},
		{"riddle-mid", "user3", now - 50},
		{"riddle-new", "user2", now},
	}
	for _, s := range seed {
		riddle := entity.NewRiddle(s.id, s.creator, entity.Coordinate{Lat: 47, Lon: 8}, nil, s.createdAt)
		require.NoError(t, env.riddleRepo.Create(ctx, riddle))
		_, err := env.blobStorage.Upload(ctx, &storage.UploadObject{
			Key: imageKey(s.id), Mime: "image/png", Data: []byte("image-bytes"),
		})
		require.NoError(t, err)
	}

	resp, err := env.domain.GetFeed(ctx, &model.GetFeedRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Riddles, 3)
	require.Equal(t, "riddle-new", resp.Riddles[0].ID)
	require.Equal(t, "riddle-mid", resp.Riddles[1].ID)
	require.Equal(t, "riddle-old", resp.Riddles[2].ID)

	// No followees means an empty feed, not an error.
	resp, err = env.domain.GetFeed(testutil.NewContextWithUserID("user9"), &model.GetFeedRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.Riddles)
}

func Test_riddleDomain_GetSolved(t *testing.T) {
	env := newRiddleTestEnv()
	creatorCtx := testutil.NewContext()
	guesserCtx := testutil.NewContextWithUserID("user2")

	id := env.mustCreate(t, creatorCtx, []float64{47.37, 8.54})
	_, err := env.domain.Guess(guesserCtx, &model.GuessRiddleRequest{
		ID: id, Location: []float64{47.4, 8.6},
	})
	require.NoError(t, err)

	// A score entry referencing a deleted riddle is skipped.
	require.NoError(t, env.userClient.WriteScore(guesserCtx, "user2", "deleted-riddle", 100))

	resp, err := env.domain.GetSolved(guesserCtx, &model.GetSolvedRiddlesRequest{UserID: "user2"})
	require.NoError(t, err)
	require.Len(t, resp.Riddles, 1)
	require.Equal(t, id, resp.Riddles[0].ID)
	require.True(t, resp.Riddles[0].Solved)

	// A third party browsing the same list gets the unsolved view.
	resp, err = env.domain.GetSolved(testutil.NewContextWithUserID("user3"),
		&model.GetSolvedRiddlesRequest{UserID: "user2"})
	require.NoError(t, err)
	require.Len(t, resp.Riddles, 1)
	require.False(t, resp.Riddles[0].Solved)
	require.Empty(t, resp.Riddles[0].Location)
}

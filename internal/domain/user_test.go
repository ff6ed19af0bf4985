package domain

import (
	"testing"

	"github.com/findme-app/backend/internal/model"
	"github.com/findme-app/backend/internal/testutil"
	"github.com/findme-app/backend/pkg/errorx"
	"github.com/stretchr/testify/require"
)

func Test_userDomain_RegisterAndGet(t *testing.T) {
	d := NewUserDomain(testutil.NewInMemoryUserRepository())
	ctx := testutil.NewContext()

	bio := "hello"
	resp, err := d.Register(ctx, &model.RegisterUserRequest{
		FirstName: "Ada", LastName: "Lovelace", Bio: &bio,
	})
	require.NoError(t, err)
	require.Equal(t, "user1", resp.Username)
	require.Nil(t, resp.AverageScore)

	_, err = d.Register(ctx, &model.RegisterUserRequest{FirstName: "Ada", LastName: "Lovelace"})
	require.Equal(t, errorx.AlreadyExists, errorx.CodeOf(err))

	_, err = d.Register(testutil.NewContextWithUserID("user2"), &model.RegisterUserRequest{
		FirstName: "", LastName: "Lovelace",
	})
	require.Equal(t, errorx.BadRequest, errorx.CodeOf(err))

	got, err := d.Get(testutil.NewContextWithUserID("user2"), &model.GetUserRequest{Username: "user1"})
	require.NoError(t, err)
	require.Equal(t, "Ada", got.FirstName)

	_, err = d.Get(ctx, &model.GetUserRequest{Username: "nobody"})
	require.Equal(t, errorx.NotFound, errorx.CodeOf(err))
}

func Test_userDomain_Update(t *testing.T) {
	d := NewUserDomain(testutil.NewInMemoryUserRepository())
	ctx := testutil.NewContext()

	_, err := d.Update(ctx, &model.UpdateUserRequest{FirstName: "Ada", LastName: "Lovelace"})
	require.Equal(t, errorx.NotFound, errorx.CodeOf(err))

	_, err = d.Register(ctx, &model.RegisterUserRequest{FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)

	bio := "updated"
	resp, err := d.Update(ctx, &model.UpdateUserRequest{
		FirstName: "Ada", LastName: "Byron", Bio: &bio,
	})
	require.NoError(t, err)
	require.Equal(t, "Byron", resp.LastName)
	require.Equal(t, &bio, resp.Bio)
}

func Test_userDomain_Search(t *testing.T) {
	userRepo := testutil.NewInMemoryUserRepository()
	userRepo.MustCreate("alice")
	userRepo.MustCreate("alicia")
	userRepo.MustCreate("bob")

	d := NewUserDomain(userRepo)
	ctx := testutil.NewContext()

	resp, err := d.Search(ctx, &model.SearchUsersRequest{UsernamePrefix: "ali"})
	require.NoError(t, err)
	require.Len(t, resp.Users, 2)

	resp, err = d.Search(ctx, &model.SearchUsersRequest{UsernamePrefix: "carol"})
	require.NoError(t, err)
	require.Empty(t, resp.Users)

	_, err = d.Search(ctx, &model.SearchUsersRequest{UsernamePrefix: ""})
	require.Equal(t, errorx.BadRequest, errorx.CodeOf(err))
}

func Test_userDomain_Scores(t *testing.T) {
	d := NewUserDomain(testutil.NewInMemoryUserRepository())
	ctx := testutil.NewContext()

	_, err := d.Register(ctx, &model.RegisterUserRequest{FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)

	_, err = d.AddScore(ctx, &model.AddScoreRequest{RiddleID: "riddle1", Score: -1})
	require.Equal(t, errorx.BadRequest, errorx.CodeOf(err))

	resp, err := d.AddScore(ctx, &model.AddScoreRequest{RiddleID: "riddle1", Score: 9000})
	require.NoError(t, err)
	require.NotNil(t, resp.AverageScore)
	require.Equal(t, 9000.0, *resp.AverageScore)

	resp, err = d.AddScore(ctx, &model.AddScoreRequest{RiddleID: "riddle2", Score: 7000})
	require.NoError(t, err)
	require.Equal(t, 8000.0, *resp.AverageScore)

	scores, err := d.GetScores(ctx, &model.GetUserScoresRequest{Username: "user1"})
	require.NoError(t, err)
	require.Len(t, scores.Scores, 2)
	require.Equal(t, "riddle1", scores.Scores[0].RiddleID)
}

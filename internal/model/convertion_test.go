package model

import (
	"encoding/base64"
	"testing"

	"github.com/findme-app/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

func TestConvertRiddle(t *testing.T) {
	riddle := entity.NewRiddle("riddle1", "creator",
		entity.Coordinate{Lat: 47.37, Lon: 8.54}, nil, 42)
	riddle.Guesses = append(riddle.Guesses, entity.Guess{
		UserID:   "guesser",
		Location: entity.Coordinate{Lat: 48, Lon: 9},
	})
	riddle.Ratings = append(riddle.Ratings, entity.Rating{UserID: "guesser", Value: 4})
	riddle.Comments = append(riddle.Comments, entity.Comment{UserID: "guesser", Text: "nice"})

	// The creator and the guesser get the solved view with the secret
	// location and the guess list.
	for _, viewer := range []string{"creator", "guesser"} {
		view := ConvertRiddle(riddle, viewer, nil)
		require.True(t, view.Solved)
		require.Equal(t, Coordinate{47.37, 8.54}, view.Location)
		require.Len(t, view.Guesses, 1)
		require.Equal(t, "guesser", view.Guesses[0].UserID)
	}

	// A third party gets neither.
	view := ConvertRiddle(riddle, "stranger", nil)
	require.False(t, view.Solved)
	require.Empty(t, view.Location)
	require.Empty(t, view.Guesses)

	// Comments and the average rating are public either way.
	require.Len(t, view.Comments, 1)
	require.NotNil(t, view.AverageRating)
	require.Equal(t, 4.0, *view.AverageRating)
	require.False(t, view.IsRatedByUser)
	require.Equal(t, int64(42), view.CreatedAt)
}

func TestConvertRiddleImage(t *testing.T) {
	riddle := entity.NewRiddle("riddle1", "creator", entity.Coordinate{}, nil, 0)

	view := ConvertRiddle(riddle, "stranger", []byte("image-bytes"))
	require.Equal(t, base64.StdEncoding.EncodeToString([]byte("image-bytes")), view.ImageBase64)

	view = ConvertRiddle(riddle, "stranger", nil)
	require.Empty(t, view.ImageBase64)
}

func TestConvertUser(t *testing.T) {
	user := entity.NewUser("user1", "Ada", "Lovelace", nil)
	view := ConvertUser(user)
	require.Equal(t, "user1", view.Username)
	require.Nil(t, view.AverageScore)

	user.Scores = append(user.Scores,
		entity.Score{RiddleID: "riddle1", Value: 9000},
		entity.Score{RiddleID: "riddle2", Value: 7000},
	)
	view = ConvertUser(user)
	require.NotNil(t, view.AverageScore)
	require.Equal(t, 8000.0, *view.AverageScore)
}

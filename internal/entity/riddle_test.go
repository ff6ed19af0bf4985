package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCoordinate(t *testing.T) {
	coordinate, err := NewCoordinate([]float64{47.37, 8.54})
	require.NoError(t, err)
	require.Equal(t, Coordinate{Lat: 47.37, Lon: 8.54}, coordinate)
	require.Equal(t, []float64{47.37, 8.54}, coordinate.Values())

	_, err = NewCoordinate([]float64{47.37})
	require.Error(t, err)

	_, err = NewCoordinate([]float64{47.37, 8.54, 12})
	require.Error(t, err)
}

func TestNewRating(t *testing.T) {
	for value := 1; value <= 5; value++ {
		_, err := NewRating("user1", value)
		require.NoError(t, err)
	}

	_, err := NewRating("user1", 0)
	require.Error(t, err)

	_, err = NewRating("user1", 6)
	require.Error(t, err)
}

func TestRiddleAverageRating(t *testing.T) {
	riddle := NewRiddle("riddle1", "creator", Coordinate{}, nil, 0)
	require.Nil(t, riddle.AverageRating())

	riddle.Ratings = append(riddle.Ratings,
		Rating{UserID: "user1", Value: 3},
		Rating{UserID: "user2", Value: 2},
	)

	avg := riddle.AverageRating()
	require.NotNil(t, avg)
	require.Equal(t, 2.5, *avg)
	require.True(t, riddle.IsRatedBy("user1"))
	require.False(t, riddle.IsRatedBy("user3"))
}

func TestRiddleIsSolvedFor(t *testing.T) {
	riddle := NewRiddle("riddle1", "creator", Coordinate{}, nil, 0)
	riddle.Guesses = append(riddle.Guesses, Guess{UserID: "guesser"})

	require.True(t, riddle.IsSolvedFor("creator"))
	require.True(t, riddle.IsSolvedFor("guesser"))
	require.False(t, riddle.IsSolvedFor("stranger"))
}

func TestGraphSortKey(t *testing.T) {
	require.Equal(t, "user1#user2", GraphSortKey("user1", "user2"))
	require.Equal(t, "user2", SplitGraphSortKey("user1#user2"))
}

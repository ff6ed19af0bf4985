package geoutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDistanceKm(t *testing.T) {
	zurich := Point{Lat: 47.3781750, Lon: 8.5391383}
	stgallen := Point{Lat: 47.4223234, Lon: 9.3680846}

	require.Zero(t, DistanceKm(zurich, zurich))
	require.InDelta(t, 62.6, DistanceKm(zurich, stgallen), 5)

	// Order of the endpoints does not matter.
	require.Equal(t, DistanceKm(zurich, stgallen), DistanceKm(stgallen, zurich))
}

func TestScore(t *testing.T) {
	require.Equal(t, 10000.0, Score(0))
	require.Equal(t, 9000.0, Score(10))
	require.Equal(t, 0.0, Score(100))

	// No negative scores no matter how far off the guess is.
	require.Equal(t, 0.0, Score(20000))
}

func TestScoreWith(t *testing.T) {
	require.Equal(t, 500.0, ScoreWith(50, 1000, 10))
	require.Equal(t, 0.0, ScoreWith(200, 1000, 10))
}

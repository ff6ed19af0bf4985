package geoutil

import "math"

const (
	// EarthRadiusKm is the mean radius used by the haversine formula.
	EarthRadiusKm = 6371.0

	DefaultMaxScore     = 10000.0
	DefaultPenaltyPerKm = 100.0
)

// Point is a position on the Earth's surface in decimal degrees.
type Point struct {
	Lat float64
	Lon float64
}

// DistanceKm returns the great-circle distance between a and b in
// kilometers. It is symmetric in its arguments.
func DistanceKm(a, b Point) float64 {
	phi1 := radians(a.Lat)
	phi2 := radians(b.Lat)
	deltaPhi := radians(b.Lat - a.Lat)
	deltaLambda := radians(b.Lon - a.Lon)

	h := math.Pow(math.Sin(deltaPhi/2), 2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Pow(math.Sin(deltaLambda/2), 2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// Score converts a guess distance into points with the default linear
// penalty. A perfect guess earns DefaultMaxScore, and every kilometer of
// distance costs DefaultPenaltyPerKm, never dropping below zero.
func Score(distanceKm float64) float64 {
	return ScoreWith(distanceKm, DefaultMaxScore, DefaultPenaltyPerKm)
}

// TODO: revisit the linear curve once enough real guesses are collected to
// compare it against an exponential falloff.
func ScoreWith(distanceKm, maxScore, penaltyPerKm float64) float64 {
	return math.Max(0, maxScore-distanceKm*penaltyPerKm)
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

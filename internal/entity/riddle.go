package entity

import (
	"errors"
	"fmt"

	"github.com/findme-app/backend/pkg/geoutil"
)

// Coordinate is a latitude/longitude pair in decimal degrees. It is
// validated once at the construction boundary and trusted afterwards.
type Coordinate struct {
	Lat float64 `dynamodbav:"lat" json:"lat"`
	Lon float64 `dynamodbav:"lon" json:"lon"`
}

// NewCoordinate builds a Coordinate from the wire representation, a list
// holding exactly latitude and longitude.
func NewCoordinate(values []float64) (Coordinate, error) {
	if len(values) != 2 {
		return Coordinate{}, errors.New("location should contain 2 values: latitude and longitude")
	}

	return Coordinate{Lat: values[0], Lon: values[1]}, nil
}

func (c Coordinate) Values() []float64 {
	return []float64{c.Lat, c.Lon}
}

func (c Coordinate) Point() geoutil.Point {
	return geoutil.Point{Lat: c.Lat, Lon: c.Lon}
}

type Rating struct {
	UserID string `dynamodbav:"user_id" json:"user_id"`
	Value  int    `dynamodbav:"rating" json:"rating"`
}

func NewRating(userID string, value int) (Rating, error) {
	if value < 1 || value > 5 {
		return Rating{}, fmt.Errorf("rating must be between 1 and 5, got %d", value)
	}

	return Rating{UserID: userID, Value: value}, nil
}

type Comment struct {
	UserID string `dynamodbav:"user_id" json:"user_id"`
	Text   string `dynamodbav:"comment" json:"comment"`
}

type Guess struct {
	UserID   string     `dynamodbav:"user_id" json:"user_id"`
	Location Coordinate `dynamodbav:"guess" json:"guess"`
}

// Riddle is a posted image tied to a secret coordinate. The three lists are
// append-only, entries are never edited or removed in place.
type Riddle struct {
	ID        string     `dynamodbav:"location_riddle_id"`
	CreatorID string     `dynamodbav:"user_id"`
	Location  Coordinate `dynamodbav:"location"`
	Ratings   []Rating   `dynamodbav:"ratings"`
	Comments  []Comment  `dynamodbav:"comments"`
	Guesses   []Guess    `dynamodbav:"guesses"`
	Arenas    []string   `dynamodbav:"arenas,stringset,omitempty"`
	CreatedAt int64      `dynamodbav:"created_at"`
}

func NewRiddle(id, creatorID string, location Coordinate, arenas []string, createdAt int64) *Riddle {
	return &Riddle{
		ID:        id,
		CreatorID: creatorID,
		Location:  location,
		Ratings:   []Rating{},
		Comments:  []Comment{},
		Guesses:   []Guess{},
		Arenas:    arenas,
		CreatedAt: createdAt,
	}
}

// AverageRating returns the mean of all rating values, or nil if the riddle
// has not been rated yet.
func (r *Riddle) AverageRating() *float64 {
	if len(r.Ratings) == 0 {
		return nil
	}

	var sum int
	for _, rating := range r.Ratings {
		sum += rating.Value
	}

	avg := float64(sum) / float64(len(r.Ratings))
	return &avg
}

func (r *Riddle) IsRatedBy(userID string) bool {
	for _, rating := range r.Ratings {
		if rating.UserID == userID {
			return true
		}
	}

	return false
}

func (r *Riddle) IsGuessedBy(userID string) bool {
	for _, guess := range r.Guesses {
		if guess.UserID == userID {
			return true
		}
	}

	return false
}

// IsSolvedFor reports whether the secret location may be revealed to the
// viewer. The creator and everyone who already submitted a guess see the
// solved view.
func (r *Riddle) IsSolvedFor(viewerID string) bool {
	return r.CreatorID == viewerID || r.IsGuessedBy(viewerID)
}

package model

import (
	"encoding/base64"

	"github.com/findme-app/backend/internal/entity"
)

// ConvertRiddle projects a stored riddle for one viewer. The solved view
// (viewer is the creator or has a guess on file) keeps the secret location
// and the guess list, the unsolved view drops both. The source entity is
// trusted, no re-validation happens here.
func ConvertRiddle(riddle *entity.Riddle, viewerID string, image []byte) Riddle {
	view := Riddle{
		ID:            riddle.ID,
		CreatorID:     riddle.CreatorID,
		Solved:        riddle.IsSolvedFor(viewerID),
		Comments:      convertComments(riddle.Comments),
		AverageRating: riddle.AverageRating(),
		IsRatedByUser: riddle.IsRatedBy(viewerID),
		CreatedAt:     riddle.CreatedAt,
	}

	if len(image) > 0 {
		view.ImageBase64 = base64.StdEncoding.EncodeToString(image)
	}

	if view.Solved {
		view.Location = Coordinate(riddle.Location.Values())
		view.Guesses = convertGuesses(riddle.Guesses)
	}

	return view
}

func convertComments(comments []entity.Comment) []Comment {
	result := []Comment{}
	for _, c := range comments {
		result = append(result, Comment{UserID: c.UserID, Text: c.Text})
	}

	return result
}

func convertGuesses(guesses []entity.Guess) []Guess {
	result := []Guess{}
	for _, g := range guesses {
		result = append(result, Guess{
			UserID:   g.UserID,
			Location: Coordinate(g.Location.Values()),
		})
	}

	return result
}

func ConvertUser(user *entity.User) User {
	return User{
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Bio:          user.Bio,
		AverageScore: user.AverageScore(),
	}
}

func ConvertFollowRequest(request *entity.FollowRequest) FollowRequest {
	return FollowRequest{
		Requester: request.Requester,
		Requestee: request.Requestee,
		Status:    string(request.Status),
		CreatedAt: request.CreatedAt,
	}
}

package model

type Coordinate []float64

type Rating struct {
	UserID string `json:"user_id"`
	Value  int    `json:"rating"`
}

type Comment struct {
	UserID string `json:"user_id"`
	Text   string `json:"comment"`
}

type Guess struct {
	UserID   string     `json:"user_id"`
	Location Coordinate `json:"guess"`
}

// Riddle is the viewer-dependent representation of a stored riddle. The
// secret location and the guess list are only present in the solved view.
type Riddle struct {
	ID            string     `json:"location_riddle_id"`
	CreatorID     string     `json:"user_id"`
	Solved        bool       `json:"solved"`
	Location      Coordinate `json:"location,omitempty"`
	Guesses       []Guess    `json:"guesses,omitempty"`
	Comments      []Comment  `json:"comments"`
	AverageRating *float64   `json:"average_rating"`
	IsRatedByUser bool       `json:"is_rated_by_user"`
	CreatedAt     int64      `json:"created_at"`
	ImageBase64   string     `json:"image_base64,omitempty"`
}

type GuessResult struct {
	Distance      float64 `json:"distance"`
	ReceivedScore float64 `json:"received_score"`
}

type CreateRiddleRequest struct {
	ImageBase64 string    `json:"image"`
	Location    []float64 `json:"location"`
	Arenas      []string  `json:"arenas"`
}

type CreateRiddleResponse struct {
	ID      string `json:"location_riddle_id"`
	Message string `json:"message"`
}

type GetRiddleRequest struct {
	ID string `json:"location_riddle_id" form:"location_riddle_id"`
}

type GetRiddleResponse Riddle

type GetRiddlesByCreatorRequest struct {
	CreatorID string `json:"user_id" form:"user_id"`
}

type GetRiddlesByCreatorResponse struct {
	Riddles []Riddle `json:"location_riddles"`
}

type GetArenaRiddlesRequest struct {
	Arena string `json:"arena" form:"arena"`
}

type GetArenaRiddlesResponse struct {
	Riddles []Riddle `json:"location_riddles"`
}

type GetFeedRequest struct{}

type GetFeedResponse struct {
	Riddles []Riddle `json:"location_riddles"`
}

type GetSolvedRiddlesRequest struct {
	UserID string `json:"user_id" form:"user_id"`
}

type GetSolvedRiddlesResponse struct {
	Riddles []Riddle `json:"location_riddles"`
}

type RateRiddleRequest struct {
	ID    string `json:"location_riddle_id"`
	Value int    `json:"rating"`
}

type RateRiddleResponse Riddle

type GuessRiddleRequest struct {
	ID       string    `json:"location_riddle_id"`
	Location []float64 `json:"guess"`
}

type GuessRiddleResponse struct {
	Riddle      Riddle      `json:"location_riddle"`
	GuessResult GuessResult `json:"guess_result"`
}

type CommentRiddleRequest struct {
	ID   string `json:"location_riddle_id"`
	Text string `json:"comment"`
}

type CommentRiddleResponse Riddle

type DeleteRiddleRequest struct {
	ID string `json:"location_riddle_id"`
}

type DeleteRiddleResponse struct {
	Message string `json:"message"`
}

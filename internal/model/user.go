package model

type User struct {
	Username     string   `json:"username"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	Bio          *string  `json:"bio"`
	AverageScore *float64 `json:"average_score"`
}

type UserScore struct {
	RiddleID string  `json:"location_riddle_id"`
	Score    float64 `json:"score"`
}

type RegisterUserRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Bio       *string `json:"bio"`
}

type RegisterUserResponse User

type GetUserRequest struct {
	Username string `json:"username" form:"username"`
}

type GetUserResponse User

type UpdateUserRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Bio       *string `json:"bio"`
}

type UpdateUserResponse User

type SearchUsersRequest struct {
	UsernamePrefix string `json:"username_prefix" form:"username_prefix"`
}

type SearchUsersResponse struct {
	Users []User `json:"users"`
}

type AddScoreRequest struct {
	RiddleID string  `json:"location_riddle_id"`
	Score    float64 `json:"score"`
}

type AddScoreResponse User

type GetUserScoresRequest struct {
	Username string `json:"username" form:"username"`
}

type GetUserScoresResponse struct {
	Scores []UserScore `json:"scores"`
}

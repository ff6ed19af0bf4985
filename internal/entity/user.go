package entity

type Score struct {
	RiddleID string  `dynamodbav:"location_riddle_id" json:"location_riddle_id"`
	Value    float64 `dynamodbav:"score" json:"score"`
}

type User struct {
	Username  string  `dynamodbav:"username"`
	FirstName string  `dynamodbav:"first_name"`
	LastName  string  `dynamodbav:"last_name"`
	Bio       *string `dynamodbav:"bio"`
	Scores    []Score `dynamodbav:"scores"`
}

func NewUser(username, firstName, lastName string, bio *string) *User {
	return &User{
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Bio:       bio,
		Scores:    []Score{},
	}
}

// AverageScore returns the mean of all received scores, or nil for a user
// who has not guessed yet.
func (u *User) AverageScore() *float64 {
	if len(u.Scores) == 0 {
		return nil
	}

	var sum float64
	for _, score := range u.Scores {
		sum += score.Value
	}

	avg := sum / float64(len(u.Scores))
	return &avg
}

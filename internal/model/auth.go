package model

// AccessToken is the payload embedded in signed access tokens. The username
// doubles as the user identity everywhere else.
type AccessToken struct {
	Username string `json:"username"`
}

package model

type FollowRequest struct {
	Requester string `json:"requester"`
	Requestee string `json:"requestee"`
	Status    string `json:"request_status"`
	CreatedAt int64  `json:"created_at"`
}

type CreateFollowRequestRequest struct {
	Requestee string `json:"requestee"`
}

type CreateFollowRequestResponse FollowRequest

type AcceptFollowRequestRequest struct {
	Requester string `json:"requester"`
}

type AcceptFollowRequestResponse FollowRequest

type DeclineFollowRequestRequest struct {
	Requester string `json:"requester"`
}

type DeclineFollowRequestResponse FollowRequest

type GetReceivedFollowRequestsRequest struct{}

type GetReceivedFollowRequestsResponse struct {
	Requests []FollowRequest `json:"follow_requests"`
}

type GetConnectionsRequest struct {
	UserID string `json:"user_id" form:"user_id"`
}

type GetConnectionsResponse struct {
	Followers []string `json:"followers"`
	Following []string `json:"following"`
}

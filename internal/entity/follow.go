package entity

import (
	"fmt"
	"strings"
)

// FollowStatus is the state of a follow request. A request starts pending
// and ends accepted or declined, both terminal.
type FollowStatus string

const (
	FollowStatusPending  FollowStatus = "pending"
	FollowStatusAccepted FollowStatus = "accepted"
	FollowStatusDeclined FollowStatus = "declined"
)

// Graph partitions of the single denormalized follower table. A request is
// one row in the REQUEST partition; acceptance adds one row to FOLLOWERS
// and one mirrored row to FOLLOWING.
const (
	GraphPartitionRequest   = "REQUEST"
	GraphPartitionFollowers = "FOLLOWERS"
	GraphPartitionFollowing = "FOLLOWING"
)

type FollowRequest struct {
	Requester string       `dynamodbav:"requester"`
	Requestee string       `dynamodbav:"requestee"`
	Status    FollowStatus `dynamodbav:"request_status"`
	CreatedAt int64        `dynamodbav:"created_at"`
}

// GraphSortKey builds the "{a}#{b}" sort key shared by all partitions.
func GraphSortKey(a, b string) string {
	return fmt.Sprintf("%s#%s", a, b)
}

// SplitGraphSortKey returns the second component of a "{a}#{b}" sort key,
// which is the counterpart identity of a relationship row.
func SplitGraphSortKey(sortKey string) string {
	_, counterpart, _ := strings.Cut(sortKey, "#")
	return counterpart
}

package domain

import (
	"context"

	"github.com/findme-app/backend/internal/model"
	"github.com/findme-app/backend/pkg/errorx"
	"github.com/findme-app/backend/pkg/xcontext"
	"github.com/findme-app/backend/pkg/xredis"
)

const (
	leaderboardKey          = "leaderboard:global"
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

type LeaderboardDomain interface {
	Record(ctx context.Context, username string, score float64) error
	GetLeaderboard(ctx context.Context, req *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
}

type leaderboardDomain struct {
	redisClient xredis.Client
}

func NewLeaderboardDomain(redisClient xredis.Client) *leaderboardDomain {
	return &leaderboardDomain{redisClient: redisClient}
}

// Record accumulates a received guess score onto the user's leaderboard
// total.
func (d *leaderboardDomain) Record(ctx context.Context, username string, score float64) error {
	return d.redisClient.ZIncrBy(ctx, leaderboardKey, score, username)
}

func (d *leaderboardDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = defaultLeaderboardLimit
	}

	if limit < 0 || limit > maxLeaderboardLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", maxLeaderboardLimit)
	}

	records, err := d.redisClient.ZRevRangeWithScores(ctx, leaderboardKey, 0, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	entries := []model.LeaderboardEntry{}
	for i, record := range records {
		username, ok := record.Member.(string)
		if !ok {
			xcontext.Logger(ctx).Errorf("Invalid leaderboard member %v", record.Member)
			return nil, errorx.Unknown
		}

		entries = append(entries, model.LeaderboardEntry{
			Username: username,
			Score:    record.Score,
			Rank:     i + 1,
		})
	}

	return &model.GetLeaderboardResponse{Entries: entries}, nil
}

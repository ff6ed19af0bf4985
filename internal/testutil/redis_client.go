package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/redis/go-redis/v9"
)

// MockRedisClient is an in-memory sorted set good enough for leaderboard
// tests. The Func fields override single operations.
type MockRedisClient struct {
	ZIncrByFunc             func(ctx context.Context, key string, incr float64, member string) error
	ZRevRangeWithScoresFunc func(ctx context.Context, key string, offset, limit int) ([]redis.Z, error)
	ZScoreFunc              func(ctx context.Context, key, member string) (float64, error)

	mutex sync.Mutex
	sets  map[string]map[string]float64
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{sets: make(map[string]map[string]float64)}
}

func (m *MockRedisClient) ZIncrBy(
	ctx context.Context, key string, incr float64, member string,
) error {
	if m.ZIncrByFunc != nil {
		return m.ZIncrByFunc(ctx, key, incr, member)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.sets[key] == nil {
		m.sets[key] = make(map[string]float64)
	}

	m.sets[key][member] += incr
	return nil
}

func (m *MockRedisClient) ZRevRangeWithScores(
	ctx context.Context, key string, offset, limit int,
) ([]redis.Z, error) {
	if m.ZRevRangeWithScoresFunc != nil {
		return m.ZRevRangeWithScoresFunc(ctx, key, offset, limit)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	members := []redis.Z{}
	for member, score := range m.sets[key] {
		members = append(members, redis.Z{Score: score, Member: member})
	}

	sort.Slice(members, func(i, j int) bool { return members[i].Score > members[j].Score })

	if offset >= len(members) {
		return []redis.Z{}, nil
	}

	members = members[offset:]
	if limit < len(members) {
		members = members[:limit]
	}

	return members, nil
}

func (m *MockRedisClient) ZScore(ctx context.Context, key, member string) (float64, error) {
	if m.ZScoreFunc != nil {
		return m.ZScoreFunc(ctx, key, member)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	score, ok := m.sets[key][member]
	if !ok {
		return 0, redis.Nil
	}

	return score, nil
}

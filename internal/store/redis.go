package store

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/studycove/studytime-cron/internal/utils"
	"github.com/studycove/studytime-cron/models"
)

// RedisStore backs RankedStore with Redis sorted sets: one set per leaderboard
// category, member ID as the set member, accrued hours as the score.
//
// Members with equal scores are ordered lexically by member ID (native sorted
// set behavior); other backends may break ties differently.
type RedisStore struct {
	client     redis.UniversalClient
	numDecimal int
}

func NewRedisStore(client redis.UniversalClient, numDecimal int) *RedisStore {
	return &RedisStore{
		client:     client,
		numDecimal: numDecimal,
	}
}

func (s *RedisStore) IncrementScore(ctx context.Context, category, memberID string, delta float64) error {
	return s.client.ZIncrBy(ctx, category, delta, memberID).Err()
}

func (s *RedisStore) IncrementScores(ctx context.Context, categories []string, memberID string, delta float64) error {
	// MULTI/EXEC so the fan-out across window categories lands atomically.
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, category := range categories {
			pipe.ZIncrBy(ctx, category, delta, memberID)
		}
		return nil
	})
	return err
}

func (s *RedisStore) GetRank(ctx context.Context, category, memberID string) (int64, error) {
	// ZADD NX and ZREVRANK inside one MULTI/EXEC: the lazy zero-init and the
	// rank read cannot interleave with a concurrent first query.
	var rankCmd *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAddNX(ctx, category, redis.Z{Score: 0, Member: memberID})
		rankCmd = pipe.ZRevRank(ctx, category, memberID)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return rankCmd.Val() + 1, nil
}

func (s *RedisStore) GetScore(ctx context.Context, category, memberID string) (float64, error) {
	score, err := s.client.ZScore(ctx, category, memberID).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return utils.RoundNum(score, s.numDecimal), nil
}

func (s *RedisStore) TopN(ctx context.Context, category string, n int64) ([]models.ScoreEntry, error) {
	zs, err := s.client.ZRevRangeWithScores(ctx, category, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]models.ScoreEntry, 0, len(zs))
	for _, z := range zs {
		memberID, _ := z.Member.(string)
		entries = append(entries, models.ScoreEntry{
			MemberID: memberID,
			Score:    utils.RoundNum(z.Score, s.numDecimal),
		})
	}
	return entries, nil
}

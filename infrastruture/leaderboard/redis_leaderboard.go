package leaderboard

import (
	"context"
	"fmt"
	"time"

	"github.com/beka-birhanu/circuit-maze/service/i"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix  = "circuit"
	levelKeyFmt    = "%s:leaderboard:level_%d"
	defaultTTLDays = 30
)

var _ i.Leaderboard = &RedisLeaderboard{}

// RedisLeaderboard keeps one sorted set per level, scored by each player's best result.
type RedisLeaderboard struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisLeaderboard creates a leaderboard under prefix. Sets that receive no score for ttl
// expire; a zero ttl uses the default.
func NewRedisLeaderboard(client *redis.Client, prefix string, ttl time.Duration) *RedisLeaderboard {
	if prefix == "" {
		prefix = defaultPrefix
	}
	if ttl <= 0 {
		ttl = defaultTTLDays * 24 * time.Hour
	}
	return &RedisLeaderboard{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Submit stores score for member unless a higher score is already stored.
func (rl *RedisLeaderboard) Submit(ctx context.Context, level int, member string, score float64) error {
	key := rl.key(level)

	pipe := rl.client.TxPipeline()
	pipe.ZAddArgs(ctx, key, redis.ZAddArgs{
		GT:      true,
		Members: []redis.Z{{Score: score, Member: member}},
	})
	pipe.Expire(ctx, key, rl.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("submitting score: %w", err)
	}
	return nil
}

// Top returns up to limit members with the highest scores.
func (rl *RedisLeaderboard) Top(ctx context.Context, level int, limit int64) ([]i.LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, nil
	}

	members, err := rl.client.ZRevRangeWithScores(ctx, rl.key(level), 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading leaderboard: %w", err)
	}

	entries := make([]i.LeaderboardEntry, 0, len(members))
	for _, m := range members {
		entries = append(entries, i.LeaderboardEntry{
			Member: fmt.Sprint(m.Member),
			Score:  m.Score,
		})
	}
	return entries, nil
}

func (rl *RedisLeaderboard) key(level int) string {
	return fmt.Sprintf(levelKeyFmt, rl.prefix, level)
}

package i

import (
	"context"
)

// Leaderboard keeps the best score of each player per level.
type Leaderboard interface {
	// Submit records score for member, keeping the higher of the stored and the new score.
	Submit(ctx context.Context, level int, member string, score float64) error

	// Top returns up to limit entries ordered by score, highest first.
	Top(ctx context.Context, level int, limit int64) ([]LeaderboardEntry, error)
}

// LeaderboardEntry is one ranked player.
type LeaderboardEntry struct {
	Member string  `json:"player"`
	Score  float64 `json:"score"`
}

// Locker provides mutual exclusion across processes.
type Locker interface {
	// Lock blocks until key is held and returns the function that releases it.
	Lock(ctx context.Context, key string) (func(), error)
}

package i

import (
	"context"

	dmn "github.com/beka-birhanu/circuit-maze/domain"
	"github.com/google/uuid"
)

// ProgressTracker records completed levels and serves leaderboards.
type ProgressTracker interface {
	Progress(ctx context.Context, playerID uuid.UUID) (*dmn.Progress, error)
	Complete(ctx context.Context, playerID uuid.UUID, username string, level, score, questions int) (*dmn.Progress, error)
	Leaderboard(ctx context.Context, level int, limit int64) ([]LeaderboardEntry, error)
}

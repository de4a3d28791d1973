package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/circuit-maze/domain"
	"github.com/beka-birhanu/circuit-maze/interfaces/general"
	"github.com/beka-birhanu/circuit-maze/service/i"
	"github.com/google/uuid"
)

const (
	progressLockKeyFmt = "progress:%s:lock"

	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

var _ i.ProgressTracker = &ProgressService{}

// ProgressConfig holds the dependencies of a ProgressService.
type ProgressConfig struct {
	Repo        i.ProgressRepo
	Leaderboard i.Leaderboard
	Locker      i.Locker
	Levels      i.LevelRegistry
	Logger      general.Logger
	Clock       func() time.Time // Defaults to time.Now.
}

// ProgressService records finished levels and keeps the leaderboards in step.
type ProgressService struct {
	repo        i.ProgressRepo
	leaderboard i.Leaderboard
	locker      i.Locker
	levels      i.LevelRegistry
	logger      general.Logger
	now         func() time.Time
}

// NewProgressService creates a ProgressService from c.
func NewProgressService(c *ProgressConfig) (*ProgressService, error) {
	if c == nil || c.Repo == nil || c.Leaderboard == nil || c.Locker == nil || c.Levels == nil || c.Logger == nil {
		return nil, errors.New("progress service requires repo, leaderboard, locker, levels and logger")
	}
	if len(c.Levels.Definitions()) == 0 {
		return nil, errors.New("progress service requires at least one level")
	}

	now := c.Clock
	if now == nil {
		now = time.Now
	}

	return &ProgressService{
		repo:        c.Repo,
		leaderboard: c.Leaderboard,
		locker:      c.Locker,
		levels:      c.Levels,
		logger:      c.Logger,
		now:         now,
	}, nil
}

// Progress returns the stored progress of a player, or a fresh one.
func (s *ProgressService) Progress(ctx context.Context, playerID uuid.UUID) (*dmn.Progress, error) {
	p, err := s.repo.ByPlayer(ctx, playerID)
	if err != nil {
		s.logger.Error(fmt.Sprintf("loading progress of %s: %s", playerID, err))
		return nil, err
	}
	if p == nil {
		p = dmn.NewProgress(playerID, s.firstLevel())
	}
	return p, nil
}

// Complete records that a player finished a level. Updates for one player are serialised with
// a distributed lock because the progress document is read, modified and written back.
func (s *ProgressService) Complete(ctx context.Context, playerID uuid.UUID, username string, level, score, questions int) (*dmn.Progress, error) {
	if _, err := s.levels.Definition(level); err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, fmt.Sprintf(progressLockKeyFmt, playerID))
	if err != nil {
		s.logger.Error(fmt.Sprintf("obtaining progress lock for %s: %s", playerID, err))
		return nil, err
	}
	defer unlock()

	p, err := s.Progress(ctx, playerID)
	if err != nil {
		return nil, err
	}

	improved, err := p.Complete(level, s.lastLevel(), score, questions, s.now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, p); err != nil {
		s.logger.Error(fmt.Sprintf("saving progress of %s: %s", playerID, err))
		return nil, err
	}
	s.logger.Info(fmt.Sprintf("player %s completed level %d with score %d", playerID, level, score))

	if improved {
		if err := s.leaderboard.Submit(ctx, level, username, float64(score)); err != nil {
			s.logger.Warning(fmt.Sprintf("submitting score of %s to level %d leaderboard: %s", playerID, level, err))
		}
	}
	return p, nil
}

// Leaderboard returns the best scores of a level.
func (s *ProgressService) Leaderboard(ctx context.Context, level int, limit int64) ([]i.LeaderboardEntry, error) {
	if _, err := s.levels.Definition(level); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	limit = min(limit, maxLeaderboardLimit)

	entries, err := s.leaderboard.Top(ctx, level, limit)
	if err != nil {
		s.logger.Error(fmt.Sprintf("reading level %d leaderboard: %s", level, err))
		return nil, err
	}
	return entries, nil
}

func (s *ProgressService) firstLevel() int {
	return s.levels.Definitions()[0].Number
}

func (s *ProgressService) lastLevel() int {
	defs := s.levels.Definitions()
	return defs[len(defs)-1].Number
}

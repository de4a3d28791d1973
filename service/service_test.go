package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/circuit-maze/domain"
	"github.com/beka-birhanu/circuit-maze/level"
	"github.com/beka-birhanu/circuit-maze/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}

type memUserRepo struct {
	users map[uuid.UUID]*dmn.User
}

func (r *memUserRepo) Save(_ context.Context, u *dmn.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, dmn.ErrUserNotFound
}

func (r *memUserRepo) ByUsername(_ context.Context, username string) (*dmn.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, dmn.ErrUserNotFound
}

type stubTokenizer struct {
	claims map[string]interface{}
}

func (s *stubTokenizer) Generate(claims map[string]interface{}, _ time.Duration) (string, error) {
	s.claims = claims
	return "signed", nil
}

func (s *stubTokenizer) Decode(string) (map[string]interface{}, error) {
	return s.claims, nil
}

type memProgressRepo struct {
	saved map[uuid.UUID]dmn.Progress
	err   error
}

func (r *memProgressRepo) Save(_ context.Context, p *dmn.Progress) error {
	if r.err != nil {
		return r.err
	}
	cp := *p
	cp.Scores = make(map[int]dmn.LevelScore, len(p.Scores))
	for k, v := range p.Scores {
		cp.Scores[k] = v
	}
	r.saved[p.PlayerID] = cp
	return nil
}

func (r *memProgressRepo) ByPlayer(_ context.Context, id uuid.UUID) (*dmn.Progress, error) {
	p, ok := r.saved[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

type memLeaderboard struct {
	scores map[int]map[string]float64
	err    error
}

func (l *memLeaderboard) Submit(_ context.Context, level int, member string, score float64) error {
	if l.err != nil {
		return l.err
	}
	if l.scores[level] == nil {
		l.scores[level] = make(map[string]float64)
	}
	l.scores[level][member] = max(l.scores[level][member], score)
	return nil
}

func (l *memLeaderboard) Top(_ context.Context, level int, limit int64) ([]i.LeaderboardEntry, error) {
	var entries []i.LeaderboardEntry
	for m, s := range l.scores[level] {
		entries = append(entries, i.LeaderboardEntry{Member: m, Score: s})
	}
	sort.Slice(entries, func(a, b int) bool { return entries[a].Score > entries[b].Score })
	if int64(len(entries)) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

type countingLocker struct {
	mu    sync.Mutex
	locks int
	held  int
	err   error
}

func (l *countingLocker) Lock(context.Context, string) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	l.mu.Lock()
	l.locks++
	l.held++
	l.mu.Unlock()
	return func() {
		l.mu.Lock()
		l.held--
		l.mu.Unlock()
	}, nil
}

func TestAuth(t *testing.T) {
	repo := &memUserRepo{users: make(map[uuid.UUID]*dmn.User)}
	tokenizer := &stubTokenizer{}
	auth, err := NewAuthService(repo, tokenizer, nopLogger{})
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, auth.Register(ctx, "volta", "resistor-Ladder-2024?"))

	t.Run("duplicate username", func(t *testing.T) {
		err := auth.Register(ctx, "volta", "q7-Vortex!Kelp-Zinc9")
		assert.ErrorIs(t, err, dmn.ErrUsernameConflict)
	})

	t.Run("sign in", func(t *testing.T) {
		user, token, err := auth.SignIn(ctx, "volta", "resistor-Ladder-2024?")
		require.NoError(t, err)
		assert.Equal(t, "signed", token)
		assert.Equal(t, "volta", user.Username)
		assert.Equal(t, user.ID.String(), tokenizer.claims["userID"])
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := auth.SignIn(ctx, "volta", "nope")
		assert.ErrorIs(t, err, dmn.ErrInvalidCredential)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, _, err := auth.SignIn(ctx, "ampere", "resistor-Ladder-2024?")
		assert.ErrorIs(t, err, dmn.ErrInvalidCredential)
	})

	t.Run("missing dependencies", func(t *testing.T) {
		_, err := NewAuthService(nil, tokenizer, nopLogger{})
		assert.Error(t, err)
	})
}

func newProgressFixture(t *testing.T) (*ProgressService, *memProgressRepo, *memLeaderboard, *countingLocker) {
	t.Helper()
	repo := &memProgressRepo{saved: make(map[uuid.UUID]dmn.Progress)}
	board := &memLeaderboard{scores: make(map[int]map[string]float64)}
	locker := &countingLocker{}
	now := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

	svc, err := NewProgressService(&ProgressConfig{
		Repo:        repo,
		Leaderboard: board,
		Locker:      locker,
		Levels:      level.NewRegistry(level.Config{}),
		Logger:      nopLogger{},
		Clock:       func() time.Time { return now },
	})
	require.NoError(t, err)
	return svc, repo, board, locker
}

func TestProgressService(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh player starts at level one", func(t *testing.T) {
		svc, _, _, _ := newProgressFixture(t)
		p, err := svc.Progress(ctx, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, 1, p.Unlocked)
		assert.Empty(t, p.Scores)
	})

	t.Run("complete unlocks and ranks", func(t *testing.T) {
		svc, repo, board, locker := newProgressFixture(t)
		id := uuid.New()

		p, err := svc.Complete(ctx, id, "volta", 1, 450, 3)
		require.NoError(t, err)
		assert.Equal(t, 2, p.Unlocked)
		assert.Equal(t, 2, repo.saved[id].Unlocked)
		assert.Equal(t, 450.0, board.scores[1]["volta"])
		assert.Equal(t, 1, locker.locks)
		assert.Equal(t, 0, locker.held)

		entries, err := svc.Leaderboard(ctx, 1, 0)
		require.NoError(t, err)
		assert.Equal(t, []i.LeaderboardEntry{{Member: "volta", Score: 450}}, entries)
	})

	t.Run("locked level", func(t *testing.T) {
		svc, repo, _, _ := newProgressFixture(t)
		_, err := svc.Complete(ctx, uuid.New(), "volta", 4, 10, 1)
		assert.ErrorIs(t, err, dmn.ErrLevelLocked)
		assert.Empty(t, repo.saved)
	})

	t.Run("unknown level", func(t *testing.T) {
		svc, _, _, locker := newProgressFixture(t)
		_, err := svc.Complete(ctx, uuid.New(), "volta", 9, 10, 1)
		assert.ErrorIs(t, err, level.ErrUnknownLevel)
		assert.Equal(t, 0, locker.locks)

		_, err = svc.Leaderboard(ctx, 9, 5)
		assert.ErrorIs(t, err, level.ErrUnknownLevel)
	})

	t.Run("lock failure", func(t *testing.T) {
		svc, _, _, locker := newProgressFixture(t)
		locker.err = errors.New("redis down")
		_, err := svc.Complete(ctx, uuid.New(), "volta", 1, 10, 1)
		assert.Error(t, err)
	})

	t.Run("leaderboard failure does not lose progress", func(t *testing.T) {
		svc, repo, board, _ := newProgressFixture(t)
		board.err = errors.New("redis down")
		id := uuid.New()

		_, err := svc.Complete(ctx, id, "volta", 1, 10, 1)
		require.NoError(t, err)
		assert.Equal(t, 10, repo.saved[id].Scores[1].Score)
	})

	t.Run("save failure", func(t *testing.T) {
		svc, repo, board, _ := newProgressFixture(t)
		repo.err = errors.New("mongo down")
		_, err := svc.Complete(ctx, uuid.New(), "volta", 1, 10, 1)
		assert.Error(t, err)
		assert.Empty(t, board.scores)
	})
}

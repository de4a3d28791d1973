package dmn

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("valid user", func(t *testing.T) {
		id := uuid.New()
		user, err := NewUser(UserConfig{ID: id, Username: "ohm_runner", PlainPassword: "capacitor-Lattice-93!"})
		require.NoError(t, err)

		assert.Equal(t, id, user.ID)
		assert.NotEqual(t, "capacitor-Lattice-93!", user.PasswordHash)
		assert.True(t, user.VerifyPassword("capacitor-Lattice-93!"))
		assert.False(t, user.VerifyPassword("wrong"))
	})

	tests := []struct {
		name     string
		username string
		password string
		err      error
	}{
		{"short username", "ab", "capacitor-Lattice-93!", ErrUsernameTooShort},
		{"long username", "abcdefghijklmnopqrstu", "capacitor-Lattice-93!", ErrUsernameTooLong},
		{"bad characters", "ohm runner", "capacitor-Lattice-93!", ErrUsernameFormat},
		{"weak password", "ohm_runner", "password", ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(UserConfig{ID: uuid.New(), Username: tt.username, PlainPassword: tt.password})
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestProgressComplete(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	t.Run("unlocks the next level", func(t *testing.T) {
		p := NewProgress(uuid.New(), 1)
		changed, err := p.Complete(1, 5, 300, 3, now)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, 2, p.Unlocked)
		assert.Equal(t, LevelScore{Score: 300, Questions: 3, CompletedAt: now}, p.Scores[1])
	})

	t.Run("keeps the best score", func(t *testing.T) {
		p := NewProgress(uuid.New(), 1)
		_, err := p.Complete(1, 5, 300, 3, now)
		require.NoError(t, err)

		changed, err := p.Complete(1, 5, 100, 3, now.Add(time.Hour))
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, 300, p.Scores[1].Score)
		assert.Equal(t, 2, p.Unlocked)
	})

	t.Run("does not unlock past the last level", func(t *testing.T) {
		p := &Progress{Unlocked: 5}
		_, err := p.Complete(5, 5, 1000, 5, now)
		require.NoError(t, err)
		assert.Equal(t, 5, p.Unlocked)
	})

	t.Run("replaying an old level keeps unlocked", func(t *testing.T) {
		p := &Progress{Unlocked: 4}
		_, err := p.Complete(2, 5, 10, 1, now)
		require.NoError(t, err)
		assert.Equal(t, 4, p.Unlocked)
	})

	t.Run("locked level", func(t *testing.T) {
		p := NewProgress(uuid.New(), 1)
		_, err := p.Complete(3, 5, 10, 1, now)
		assert.ErrorIs(t, err, ErrLevelLocked)
	})

	t.Run("negative score", func(t *testing.T) {
		p := NewProgress(uuid.New(), 1)
		_, err := p.Complete(1, 5, -1, 1, now)
		assert.ErrorIs(t, err, ErrInvalidScore)
	})
}

package i

import (
	"context"

	dmn "github.com/beka-birhanu/circuit-maze/domain"
	"github.com/google/uuid"
)

// UserRepo defines the interface for user persistence operations.
type UserRepo interface {
	// Save inserts or updates a user in the repository.
	Save(ctx context.Context, user *dmn.User) error

	// ByID retrieves a user by their unique ID.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.User, error)

	// ByUsername retrieves a user by their username.
	ByUsername(ctx context.Context, username string) (*dmn.User, error)
}

// ProgressRepo persists per-player level progress.
type ProgressRepo interface {
	// Save inserts or replaces the progress document of a player.
	Save(ctx context.Context, p *dmn.Progress) error

	// ByPlayer returns the progress of a player, or nil with no error when none is stored.
	ByPlayer(ctx context.Context, playerID uuid.UUID) (*dmn.Progress, error)
}

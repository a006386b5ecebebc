package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/jwebster45206/treasure-hunt/pkg/state"
)

// Storage persists game sessions between requests.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error
	// LoadGameState returns nil, nil when the session does not exist.
	LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error)
	DeleteGameState(ctx context.Context, id uuid.UUID) error
}

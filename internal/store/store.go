// Package store persists saved ideas and user profiles.
package store

import (
	"context"
	"errors"

	"github.com/BerylCAtieno/startup-idea-agent/internal/models"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

// Store is implemented by PostgresStore and MemoryStore.
type Store interface {
	// SaveIdea assigns ID and CreatedAt when they are zero.
	SaveIdea(ctx context.Context, idea *models.SavedIdea) error
	// ListIdeas returns the user's ideas, newest first.
	ListIdeas(ctx context.Context, userID uuid.UUID) ([]models.SavedIdea, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	SetAvatarURL(ctx context.Context, userID uuid.UUID, avatarURL string) error
	Close()
}

package store

import (
	"context"
	"testing"
	"time"

	"github.com/BerylCAtieno/startup-idea-agent/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SaveAndListIdeas(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	alice, bob := uuid.New(), uuid.New()
	first := &models.SavedIdea{UserID: alice, AreaOfInterest: "health", Idea: models.Idea{Name: "First"}}
	second := &models.SavedIdea{UserID: alice, AreaOfInterest: "finance", Idea: models.Idea{Name: "Second"}}
	other := &models.SavedIdea{UserID: bob, AreaOfInterest: "travel", Idea: models.Idea{Name: "Other"}}

	require.NoError(t, s.SaveIdea(ctx, first))
	require.NoError(t, s.SaveIdea(ctx, second))
	require.NoError(t, s.SaveIdea(ctx, other))

	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	ideas, err := s.ListIdeas(ctx, alice)
	require.NoError(t, err)
	require.Len(t, ideas, 2)
	assert.Equal(t, "Second", ideas[0].Idea.Name, "newest first")
	assert.Equal(t, "First", ideas[1].Idea.Name)

	ideas, err = s.ListIdeas(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, ideas)
}

func TestMemoryStore_KeepsProvidedIDAndTimestamp(t *testing.T) {
	s := NewMemoryStore()
	id := uuid.New()
	at := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
	idea := &models.SavedIdea{ID: id, UserID: uuid.New(), CreatedAt: at}

	require.NoError(t, s.SaveIdea(context.Background(), idea))
	assert.Equal(t, id, idea.ID)
	assert.Equal(t, at, idea.CreatedAt)
}

func TestMemoryStore_Profiles(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	user := uuid.New()

	_, err := s.GetProfile(ctx, user)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.SetAvatarURL(ctx, user, "https://cdn.example/avatars/a.png"))
	p, err := s.GetProfile(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, user, p.ID)
	assert.Equal(t, "https://cdn.example/avatars/a.png", p.AvatarURL)
	require.NotNil(t, p.UpdatedAt)
	assert.False(t, p.UpdatedAt.IsZero())

	require.NoError(t, s.SetAvatarURL(ctx, user, "https://cdn.example/avatars/b.png"))
	p, err = s.GetProfile(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/avatars/b.png", p.AvatarURL)
}

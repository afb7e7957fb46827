package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BerylCAtieno/startup-idea-agent/internal/models"
	"github.com/google/uuid"
)

// MemoryStore keeps rows in process memory. Used when DATABASE_URL is unset.
type MemoryStore struct {
	mu       sync.RWMutex
	ideas    map[uuid.UUID][]models.SavedIdea
	profiles map[uuid.UUID]models.Profile
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		ideas:    make(map[uuid.UUID][]models.SavedIdea),
		profiles: make(map[uuid.UUID]models.Profile),
		now:      time.Now,
	}
}

func (m *MemoryStore) SaveIdea(_ context.Context, idea *models.SavedIdea) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if idea.ID == uuid.Nil {
		idea.ID = uuid.New()
	}
	if idea.CreatedAt.IsZero() {
		idea.CreatedAt = m.now().UTC()
	}
	m.ideas[idea.UserID] = append(m.ideas[idea.UserID], *idea)
	return nil
}

func (m *MemoryStore) ListIdeas(_ context.Context, userID uuid.UUID) ([]models.SavedIdea, error) {
	m.mu.RLock()
	out := make([]models.SavedIdea, len(m.ideas[userID]))
	copy(out, m.ideas[userID])
	m.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryStore) GetProfile(_ context.Context, userID uuid.UUID) (*models.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *MemoryStore) SetAvatarURL(_ context.Context, userID uuid.UUID, avatarURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	updatedAt := m.now().UTC()
	m.profiles[userID] = models.Profile{ID: userID, AvatarURL: avatarURL, UpdatedAt: &updatedAt}
	return nil
}

func (m *MemoryStore) Close() {}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/BerylCAtieno/startup-idea-agent/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS saved_ideas (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL,
		startup_name TEXT NOT NULL DEFAULT '',
		area_of_interest TEXT NOT NULL,
		idea_data JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS saved_ideas_user_created_idx ON saved_ideas (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id UUID PRIMARY KEY,
		avatar_url TEXT,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

const (
	insertIdeaSQL = `INSERT INTO saved_ideas (id, user_id, startup_name, area_of_interest, idea_data)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	listIdeasSQL = `SELECT id, user_id, startup_name, area_of_interest, idea_data, created_at
		FROM saved_ideas
		WHERE user_id = $1
		ORDER BY created_at DESC`

	getProfileSQL = `SELECT id, COALESCE(avatar_url, ''), updated_at FROM profiles WHERE id = $1`

	upsertAvatarSQL = `INSERT INTO profiles (id, avatar_url, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET avatar_url = EXCLUDED.avatar_url, updated_at = NOW()`
)

// PostgresStore wraps a PostgreSQL connection pool
type PostgresStore struct {
	pool *pgxpool.Pool
}

// Connect opens the pool, verifies it and makes sure the tables exist.
func Connect(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	for _, q := range schema {
		if _, err := pool.Exec(ctx, q); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to init schema: %w", err)
		}
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresStore) SaveIdea(ctx context.Context, idea *models.SavedIdea) error {
	if idea.ID == uuid.Nil {
		idea.ID = uuid.New()
	}
	data, err := json.Marshal(idea.Idea)
	if err != nil {
		return fmt.Errorf("failed to encode idea: %w", err)
	}

	err = s.pool.QueryRow(ctx, insertIdeaSQL,
		idea.ID, idea.UserID, idea.StartupName, idea.AreaOfInterest, data,
	).Scan(&idea.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save idea: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListIdeas(ctx context.Context, userID uuid.UUID) ([]models.SavedIdea, error) {
	rows, err := s.pool.Query(ctx, listIdeasSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ideas: %w", err)
	}
	defer rows.Close()

	ideas := []models.SavedIdea{}
	for rows.Next() {
		var (
			row  models.SavedIdea
			data []byte
		)
		if err := rows.Scan(&row.ID, &row.UserID, &row.StartupName, &row.AreaOfInterest, &data, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan idea: %w", err)
		}
		if err := json.Unmarshal(data, &row.Idea); err != nil {
			return nil, fmt.Errorf("failed to decode idea %s: %w", row.ID, err)
		}
		ideas = append(ideas, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ideas: %w", err)
	}
	return ideas, nil
}

func (s *PostgresStore) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	err := s.pool.QueryRow(ctx, getProfileSQL, userID).Scan(&p.ID, &p.AvatarURL, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

func (s *PostgresStore) SetAvatarURL(ctx context.Context, userID uuid.UUID, avatarURL string) error {
	if _, err := s.pool.Exec(ctx, upsertAvatarSQL, userID, avatarURL); err != nil {
		return fmt.Errorf("failed to update avatar: %w", err)
	}
	return nil
}

var (
	_ Store = (*PostgresStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

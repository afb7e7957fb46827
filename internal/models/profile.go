package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the per-user row holding the avatar URL.
type Profile struct {
	ID        uuid.UUID  `json:"id"`
	AvatarURL string     `json:"avatarUrl,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

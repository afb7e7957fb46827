package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/BerylCAtieno/startup-idea-agent/internal/logger"
	"github.com/BerylCAtieno/startup-idea-agent/internal/models"
	"github.com/BerylCAtieno/startup-idea-agent/internal/store"
	"github.com/gin-gonic/gin"
)

const maxAvatarBytes = 5 << 20

var avatarTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// ObjectStore is the subset of object storage the avatar upload needs.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	PublicURL(key string) string
}

type ProfileHandler struct {
	store   store.Store
	objects ObjectStore
}

func NewProfileHandler(s store.Store, objects ObjectStore) *ProfileHandler {
	return &ProfileHandler{store: s, objects: objects}
}

func (h *ProfileHandler) HandleGet(c *gin.Context) {
	userID, ok := UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	profile, err := h.store.GetProfile(c.Request.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusOK, models.Profile{ID: userID})
		return
	}
	if err != nil {
		logger.Errorf("failed to load profile %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// HandleAvatarUpload stores the multipart "file" under {userID}/avatar{ext}
// and records its public URL on the profile.
func (h *ProfileHandler) HandleAvatarUpload(c *gin.Context) {
	userID, ok := UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}
	if h.objects == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "Avatar storage is not configured"})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file is required"})
		return
	}
	if fh.Size > maxAvatarBytes {
		c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: "Avatar must be 5MB or smaller"})
		return
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	contentType, ok := avatarTypes[ext]
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Unsupported image type"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Could not read upload"})
		return
	}
	defer f.Close()

	key := userID.String() + "/avatar" + ext
	ctx := c.Request.Context()
	if err := h.objects.Upload(ctx, key, f, fh.Size, contentType); err != nil {
		logger.Errorf("avatar upload for %s failed: %v", userID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to upload avatar"})
		return
	}

	avatarURL := h.objects.PublicURL(key)
	if err := h.store.SetAvatarURL(ctx, userID, avatarURL); err != nil {
		logger.Errorf("failed to store avatar url for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatarUrl": avatarURL})
}

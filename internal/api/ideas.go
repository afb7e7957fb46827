package api

import (
	"net/http"

	"github.com/BerylCAtieno/startup-idea-agent/internal/logger"
	"github.com/BerylCAtieno/startup-idea-agent/internal/models"
	"github.com/BerylCAtieno/startup-idea-agent/internal/store"
	"github.com/gin-gonic/gin"
)

// IdeasHandler saves and lists ideas for the authenticated user.
type IdeasHandler struct {
	store store.Store
}

func NewIdeasHandler(s store.Store) *IdeasHandler {
	return &IdeasHandler{store: s}
}

func (h *IdeasHandler) HandleSave(c *gin.Context) {
	userID, ok := UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req models.SaveIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	saved := &models.SavedIdea{
		UserID:         userID,
		StartupName:    req.DisplayName(),
		AreaOfInterest: req.AreaOfInterest,
		Idea:           req.Idea,
	}
	if err := h.store.SaveIdea(c.Request.Context(), saved); err != nil {
		logger.Errorf("failed to save idea for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save idea"})
		return
	}

	c.JSON(http.StatusCreated, saved)
}

func (h *IdeasHandler) HandleList(c *gin.Context) {
	userID, ok := UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	ideas, err := h.store.ListIdeas(c.Request.Context(), userID)
	if err != nil {
		logger.Errorf("failed to list ideas for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load saved ideas"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ideas": ideas})
}

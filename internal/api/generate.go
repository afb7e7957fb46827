package api

import (
	"context"
	"net/http"

	"github.com/BerylCAtieno/startup-idea-agent/internal/ideagen"
	"github.com/BerylCAtieno/startup-idea-agent/internal/logger"
	"github.com/BerylCAtieno/startup-idea-agent/internal/metrics"
	"github.com/BerylCAtieno/startup-idea-agent/internal/models"
	"github.com/gin-gonic/gin"
)

// IdeaGenerator produces one idea per call.
type IdeaGenerator interface {
	GenerateIdea(ctx context.Context, req models.IdeaRequest) (models.Idea, error)
}

type GenerateHandler struct {
	generator IdeaGenerator
}

func NewGenerateHandler(generator IdeaGenerator) *GenerateHandler {
	return &GenerateHandler{generator: generator}
}

// HandleGenerate is the idea generation proxy:
// decode → validate → call upstream → parse → respond.
func (h *GenerateHandler) HandleGenerate(c *gin.Context) {
	var req models.IdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Errorf("Error in generate-startup-idea: failed to decode body: %v", err)
		h.fail(c, err)
		return
	}

	idea, err := h.generator.GenerateIdea(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	metrics.Generations.WithLabelValues(metrics.OutcomeSuccess).Inc()
	c.JSON(http.StatusOK, models.IdeaResponse{Idea: idea})
}

func (h *GenerateHandler) fail(c *gin.Context, err error) {
	status := ideagen.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Errorf("Error in generate-startup-idea: %v", err)
	} else {
		logger.Warnf("generate-startup-idea rejected (%d): %v", status, err)
	}
	metrics.Generations.WithLabelValues(ideagen.Outcome(err)).Inc()
	c.JSON(status, models.ErrorResponse{Error: ideagen.PublicMessage(err)})
}

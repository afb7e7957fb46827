// Package ideagen turns an area of interest into a structured startup idea:
// it builds the prompt, calls the configured text-generation backend and
// parses the reply.
package ideagen

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/BerylCAtieno/startup-idea-agent/internal/config"
	"github.com/BerylCAtieno/startup-idea-agent/internal/metrics"
	"github.com/BerylCAtieno/startup-idea-agent/internal/models"
)

// Backend returns the free text produced for a prompt.
type Backend interface {
	Generate(ctx context.Context, p Prompt) (string, error)
}

// Generator is stateless across requests; one value serves the whole process.
type Generator struct {
	backend Backend
}

func NewGenerator(backend Backend) *Generator {
	return &Generator{backend: backend}
}

// NewFromConfig picks the backend named by cfg.Provider.
func NewFromConfig(ctx context.Context, cfg config.AIConfig) (*Generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		client, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return NewGenerator(client), nil
	case config.ProviderGateway, "":
		return NewGenerator(NewGatewayClient(GatewayConfig{
			URL:        cfg.GatewayURL,
			Model:      cfg.Model,
			APIKey:     cfg.APIKey,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
		})), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}

// GenerateIdea runs validate → prompt → backend → parse. A reply with no
// recognizable marker still succeeds with an empty Idea.
func (g *Generator) GenerateIdea(ctx context.Context, req models.IdeaRequest) (models.Idea, error) {
	req.Normalize()
	if req.AreaOfInterest == "" {
		return models.Idea{}, ErrAreaRequired
	}

	start := time.Now()
	text, err := g.backend.Generate(ctx, BuildPrompt(req))
	metrics.UpstreamDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return models.Idea{}, err
	}
	return ParseIdea(text), nil
}

func (g *Generator) Close() error {
	if c, ok := g.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

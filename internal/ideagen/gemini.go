package ideagen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiClient talks to Google Gemini directly instead of going through the gateway.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates the SDK client. An empty key is accepted so the
// server can start; Generate then fails per request without calling out.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return &GeminiClient{model: model}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiClient) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

func (g *GeminiClient) Generate(ctx context.Context, p Prompt) (string, error) {
	if g.client == nil {
		return "", &CredentialError{Env: "GEMINI_API_KEY"}
	}

	model := g.client.GenerativeModel(g.model)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(p.System)}}

	resp, err := model.GenerateContent(ctx, genai.Text(p.User))
	if err != nil {
		return "", mapGeminiError(err)
	}

	return extractText(resp)
}

func mapGeminiError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("failed to generate content: %w", err)
	}
	switch apiErr.Code {
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusPaymentRequired:
		return ErrPaymentRequired
	default:
		return &UpstreamError{Status: apiErr.Code, Body: apiErr.Message}
	}
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyCompletion
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return "", ErrEmptyCompletion
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", ErrEmptyCompletion
	}
	return strings.Join(parts, ""), nil
}

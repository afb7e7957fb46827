package ideagen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/BerylCAtieno/startup-idea-agent/internal/logger"
)

// maxErrorBody bounds how much of a failed upstream body is kept for logging.
const maxErrorBody = 64 << 10

// GatewayConfig configures an OpenAI-compatible chat-completions endpoint.
type GatewayConfig struct {
	URL        string
	Model      string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// GatewayClient forwards prompts to the AI gateway with a bearer credential.
type GatewayClient struct {
	url        string
	model      string
	apiKey     string
	maxRetries int
	http       *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func NewGatewayClient(cfg GatewayConfig) *GatewayClient {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &GatewayClient{
		url:        cfg.URL,
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		maxRetries: cfg.MaxRetries,
		http:       httpClient,
	}
}

// Generate sends the prompt and returns the text of the first choice.
// Transport failures are retried up to MaxRetries times; HTTP statuses never are.
func (c *GatewayClient) Generate(ctx context.Context, p Prompt) (string, error) {
	if c.apiKey == "" {
		return "", &CredentialError{Env: "LOVABLE_API_KEY"}
	}

	payload, err := json.Marshal(chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: p.System},
			{Role: "user", Content: p.User},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode gateway request: %w", err)
	}

	resp, err := c.send(ctx, payload)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		return "", ErrPaymentRequired
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		logger.Errorf("AI gateway error: status=%d body=%s", resp.StatusCode, string(body))
		return "", &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("failed to decode gateway response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return completion.Choices[0].Message.Content, nil
}

func (c *GatewayClient) send(ctx context.Context, payload []byte) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("failed to build gateway request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err == nil {
			return resp, nil
		}
		// A cancelled caller is final; anything else at the transport layer is worth one more try.
		if ctx.Err() != nil || attempt >= c.maxRetries {
			return nil, fmt.Errorf("AI gateway request failed: %w", err)
		}
		logger.Warnf("AI gateway transport error (attempt %d/%d): %v", attempt+1, c.maxRetries+1, err)
	}
}

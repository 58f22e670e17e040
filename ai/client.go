package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"ilmakase/internal/config"
	"ilmakase/internal/errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
)

// Client issues chat-completion requests to an OpenAI-compatible
// provider and bounds the number of in-flight upstream calls.
type Client struct {
	cfg        config.AIConfig
	httpClient *http.Client
	inflight   *semaphore.Weighted
}

// NewClient creates a provider client from AI configuration
func NewClient(cfg config.AIConfig) *Client {
	maxInFlight := cfg.MaxInFlight
	if maxInFlight <= 0 {
		maxInFlight = 1
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		inflight:   semaphore.NewWeighted(int64(maxInFlight)),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature,omitempty"`
	MaxTokens      int           `json:"max_tokens,omitempty"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// completeJSON sends one structured request and parses the provider's
// JSON content into T. Rate limiting is classified structurally from
// the response status, never from error message text.
func completeJSON[T any](ctx context.Context, c *Client, systemMessage, prompt string) (*T, error) {
	if err := c.inflight.Acquire(ctx, 1); err != nil {
		return nil, errors.UpstreamError(err)
	}
	defer c.inflight.Release(1)

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	if systemMessage == "" {
		systemMessage = c.cfg.SystemContext
	}

	reqBody := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemMessage},
			{Role: "user", Content: prompt},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
		ResponseFormat: &struct {
			Type string `json:"type"`
		}{Type: "json_object"},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal provider request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create provider request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	log.Debug().Str("model", c.cfg.Model).Int("prompt_len", len(prompt)).Msg("Sending provider request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.UpstreamError(fmt.Errorf("request timeout after %v: %w", c.cfg.Timeout, err))
		}
		return nil, errors.UpstreamError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.UpstreamError(err)
	}

	if resp.StatusCode != http.StatusOK {
		if isRateLimited(resp) {
			log.Warn().Int("status", resp.StatusCode).Msg("Provider rate limited")
			return nil, errors.UpstreamRateLimited("AI provider is rate limiting requests")
		}
		return nil, errors.UpstreamError(fmt.Errorf("provider status %d: %s", resp.StatusCode, string(body)))
	}

	var envelope chatResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.UpstreamError(fmt.Errorf("failed to parse provider envelope: %w", err))
	}
	if len(envelope.Choices) == 0 {
		return nil, errors.UpstreamError(fmt.Errorf("no choices in provider response"))
	}

	content := cleanJSONContent(envelope.Choices[0].Message.Content)

	var result T
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, errors.UpstreamError(fmt.Errorf("failed to parse provider JSON content: %w", err))
	}

	log.Debug().Int("content_len", len(content)).Msg("Parsed provider response")
	return &result, nil
}

// isRateLimited reports whether the provider response signals
// throttling: HTTP 429, or 503 carrying a Retry-After header.
func isRateLimited(resp *http.Response) bool {
	if resp.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return resp.StatusCode == http.StatusServiceUnavailable && resp.Header.Get("Retry-After") != ""
}

// cleanJSONContent strips markdown code fences some models wrap around
// JSON output.
func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	} else if strings.HasPrefix(content, "```") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}
	return content
}

package auth

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ilmakase/internal/config"
	"ilmakase/internal/errors"
	"ilmakase/ports"
)

// ProviderClient talks to the external managed auth service over HTTP.
type ProviderClient struct {
	cfg        config.AuthConfig
	httpClient *http.Client
}

// NewProviderClient creates an auth provider client
func NewProviderClient(cfg config.AuthConfig) ports.AuthProvider {
	return &ProviderClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// VerifyToken resolves a session token to its identity
func (c *ProviderClient) VerifyToken(ctx context.Context, token string) (*ports.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create auth request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if c.cfg.APIKey != "" {
		req.Header.Set("apikey", c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "auth provider unreachable")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var identity ports.Identity
		if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
			return nil, errors.Wrap(err, "failed to parse auth provider response")
		}
		return &identity, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, errors.Unauthenticated("invalid or expired session")
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, errors.Wrap(fmt.Errorf("auth provider status %d: %s", resp.StatusCode, string(body)), "token verification failed")
	}
}

// ExchangeCode trades an auth callback code for a session
func (c *ProviderClient) ExchangeCode(ctx context.Context, code string) (*ports.AuthSession, error) {
	payload, err := json.Marshal(map[string]string{"auth_code": code})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal code exchange request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/auth/v1/token?grant_type=authorization_code", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create code exchange request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("apikey", c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "auth provider unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, errors.Unauthenticated(fmt.Sprintf("code exchange rejected (status %d): %s", resp.StatusCode, string(body)))
	}

	var exchanged struct {
		AccessToken string         `json:"access_token"`
		User        ports.Identity `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&exchanged); err != nil {
		return nil, errors.Wrap(err, "failed to parse code exchange response")
	}
	if exchanged.AccessToken == "" {
		return nil, errors.Unauthenticated("code exchange returned no token")
	}

	return &ports.AuthSession{
		AccessToken: exchanged.AccessToken,
		Identity:    exchanged.User,
	}, nil
}

// TokenCacheKey derives the session cache key for a token. Tokens are
// hashed so raw credentials never appear in the cache.
func TokenCacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "session:" + hex.EncodeToString(sum[:])
}

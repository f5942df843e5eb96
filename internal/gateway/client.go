// Package gateway is the typed client for the remote Radiy REST API. It
// attaches the stored bearer token to every request, decodes responses into
// model types and maps failures to typed errors.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/radiy-net/radiy-client/internal/cache"
	"github.com/radiy-net/radiy-client/internal/tokens"
	"github.com/radiy-net/radiy-client/pkg/config"
	"github.com/radiy-net/radiy-client/pkg/logging"
)

// Client wraps HTTP access to the remote API
type Client struct {
	baseURL string
	http    *http.Client
	tokens  *tokens.Store
	cache   *cache.Cache
	logger  *zap.Logger
}

// New creates a new gateway client. The cache may be nil; cached fetches then
// always go to the network.
func New(cfg *config.GatewayConfig, store *tokens.Store, responseCache *cache.Cache) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("api_base_url is required")
	}

	logger := logging.GetLogger().With(zap.String("component", "gateway"))

	client := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		tokens:  store,
		cache:   responseCache,
		logger:  logger,
	}

	logger.Info("Gateway client initialized", zap.String("url", cfg.BaseURL))

	return client, nil
}

// do issues a single JSON request. A non-2xx response is mapped to
// ErrUnauthorized for 401/403 and to a StatusError otherwise.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token := c.tokens.Access(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Code: resp.StatusCode, Message: strings.TrimSpace(string(msg))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// cachedGet serves a read-only collection fetch from the response cache when
// one is configured, falling through to the network on any cache miss or
// cache error. The stored token is part of the key so users never share
// entries.
func (c *Client) cachedGet(ctx context.Context, path string, out interface{}) error {
	key := cache.HashKey(path, c.tokens.Access())

	if cached, err := c.cache.Get(ctx, key); err == nil {
		if err := json.Unmarshal([]byte(cached), out); err == nil {
			return nil
		}
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}

	if err := c.cache.Set(ctx, key, string(raw)); err != nil && err != cache.ErrCacheDisabled {
		c.logger.Warn("Failed to cache response", zap.String("path", path), zap.Error(err))
	}
	return nil
}

// invalidate drops cached entries for the given paths
func (c *Client) invalidate(ctx context.Context, paths ...string) {
	for _, path := range paths {
		key := cache.HashKey(path, c.tokens.Access())
		if err := c.cache.Delete(ctx, key); err != nil && err != cache.ErrCacheDisabled {
			c.logger.Warn("Failed to invalidate cache", zap.String("path", path), zap.Error(err))
		}
	}
}

package gateway

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/radiy-net/radiy-client/internal/models"
	"github.com/radiy-net/radiy-client/pkg/telemetry"
)

// SignIn exchanges credentials for a token pair. Storing the pair is the
// caller's decision; the gateway only transports it.
func (c *Client) SignIn(ctx context.Context, username, password string) (models.TokenPair, error) {
	ctx, span := telemetry.StartSpan(ctx, "gateway.sign_in")
	defer span.End()

	var pair models.TokenPair
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/signin", nil, body, &pair); err != nil {
		return models.TokenPair{}, fmt.Errorf("failed to sign in: %w", err)
	}
	return pair, nil
}

// SignUp registers a new account and returns the initial token pair
func (c *Client) SignUp(ctx context.Context, username, password, visibleName string) (models.TokenPair, error) {
	ctx, span := telemetry.StartSpan(ctx, "gateway.sign_up")
	defer span.End()

	var pair models.TokenPair
	body := map[string]string{
		"username":     username,
		"password":     password,
		"visible_name": visibleName,
	}
	if err := c.do(ctx, http.MethodPost, "/auth/signup", nil, body, &pair); err != nil {
		return models.TokenPair{}, fmt.Errorf("failed to sign up: %w", err)
	}
	return pair, nil
}

// Me fetches the authenticated user
func (c *Client) Me(ctx context.Context) (models.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "gateway.me")
	defer span.End()

	var user models.User
	if err := c.do(ctx, http.MethodGet, "/user_me", nil, nil, &user); err != nil {
		return models.User{}, fmt.Errorf("failed to fetch current user: %w", err)
	}
	return user, nil
}

// SignOut revokes the refresh token and clears the stored pair on success
func (c *Client) SignOut(ctx context.Context) error {
	ctx, span := telemetry.StartSpan(ctx, "gateway.sign_out")
	defer span.End()

	body := map[string]string{"refresh_token": c.tokens.Refresh()}
	if err := c.do(ctx, http.MethodPost, "/auth/signout", nil, body, nil); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}

	if err := c.tokens.Clear(); err != nil {
		c.logger.Warn("Failed to clear stored tokens", zap.Error(err))
	}
	return nil
}

package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/radiy-net/radiy-client/internal/models"
	"github.com/radiy-net/radiy-client/pkg/telemetry"
)

// Followers fetches the recent-contacts list of the authenticated user
func (c *Client) Followers(ctx context.Context) ([]models.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "gateway.followers")
	defer span.End()

	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/user_me/followers", nil, nil, &users); err != nil {
		return nil, fmt.Errorf("failed to fetch followers: %w", err)
	}
	return users, nil
}

// UserByID fetches a user by username
func (c *Client) UserByID(ctx context.Context, username string) (models.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "gateway.user_by_id")
	defer span.End()

	var user models.User
	path := "/user/" + url.PathEscape(username)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &user); err != nil {
		return models.User{}, fmt.Errorf("failed to fetch user %s: %w", username, err)
	}
	return user, nil
}

// Search queries users and communities by free text
func (c *Client) Search(ctx context.Context, q string) ([]models.SearchResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "gateway.search")
	defer span.End()

	query := url.Values{}
	query.Set("q", q)

	var results []models.SearchResult
	if err := c.do(ctx, http.MethodGet, "/search", query, nil, &results); err != nil {
		return nil, fmt.Errorf("failed to search %q: %w", q, err)
	}
	return results, nil
}

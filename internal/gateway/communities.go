package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/radiy-net/radiy-client/internal/models"
	"github.com/radiy-net/radiy-client/pkg/telemetry"
)

// MyCommunities fetches the communities the authenticated user belongs to
func (c *Client) MyCommunities(ctx context.Context) ([]models.Community, error) {
	ctx, span := telemetry.StartSpan(ctx, "gateway.my_communities")
	defer span.End()

	var communities []models.Community
	if err := c.cachedGet(ctx, "/user_me/communities", &communities); err != nil {
		return nil, fmt.Errorf("failed to fetch communities: %w", err)
	}
	return communities, nil
}

// CommunityByID fetches a community by id
func (c *Client) CommunityByID(ctx context.Context, id string) (models.Community, error) {
	ctx, span := telemetry.StartSpan(ctx, "gateway.community_by_id")
	defer span.End()

	var community models.Community
	path := "/community/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &community); err != nil {
		return models.Community{}, fmt.Errorf("failed to fetch community %s: %w", id, err)
	}
	return community, nil
}

// JoinCommunity subscribes the authenticated user to a community
func (c *Client) JoinCommunity(ctx context.Context, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "gateway.join_community")
	defer span.End()

	path := "/community/" + url.PathEscape(id) + "/join"
	if err := c.do(ctx, http.MethodPost, path, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to join community %s: %w", id, err)
	}
	c.invalidate(ctx, "/user_me/communities")
	return nil
}

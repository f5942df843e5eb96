package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/radiy-net/radiy-client/internal/models"
	"github.com/radiy-net/radiy-client/pkg/telemetry"
)

// Posts fetches the global feed
func (c *Client) Posts(ctx context.Context) ([]models.Post, error) {
	ctx, span := telemetry.StartSpan(ctx, "gateway.posts")
	defer span.End()

	var posts []models.Post
	if err := c.cachedGet(ctx, "/posts", &posts); err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}
	return posts, nil
}

// PostsByUser fetches the posts authored by a user
func (c *Client) PostsByUser(ctx context.Context, userID string) ([]models.Post, error) {
	ctx, span := telemetry.StartSpan(ctx, "gateway.posts_by_user")
	defer span.End()

	var posts []models.Post
	path := "/user/" + url.PathEscape(userID) + "/posts"
	if err := c.cachedGet(ctx, path, &posts); err != nil {
		return nil, fmt.Errorf("failed to fetch posts of user %s: %w", userID, err)
	}
	return posts, nil
}

// PostsByCommunity fetches the posts of a community
func (c *Client) PostsByCommunity(ctx context.Context, communityID string) ([]models.Post, error) {
	ctx, span := telemetry.StartSpan(ctx, "gateway.posts_by_community")
	defer span.End()

	var posts []models.Post
	path := "/community/" + url.PathEscape(communityID) + "/posts"
	if err := c.cachedGet(ctx, path, &posts); err != nil {
		return nil, fmt.Errorf("failed to fetch posts of community %s: %w", communityID, err)
	}
	return posts, nil
}

// CreatePost submits a new post and returns the created entity. The cached
// feed (and community posts when targeted) is invalidated so the next
// navigation refetches.
func (c *Client) CreatePost(ctx context.Context, text, image, communityID string) (models.Post, error) {
	ctx, span := telemetry.StartSpan(ctx, "gateway.create_post")
	defer span.End()

	body := map[string]string{"text": text}
	if image != "" {
		body["image"] = image
	}
	if communityID != "" {
		body["community"] = communityID
	}

	var post models.Post
	if err := c.do(ctx, http.MethodPost, "/post/create", nil, body, &post); err != nil {
		return models.Post{}, fmt.Errorf("failed to create post: %w", err)
	}

	invalidated := []string{"/posts"}
	if communityID != "" {
		invalidated = append(invalidated, "/community/"+url.PathEscape(communityID)+"/posts")
	}
	c.invalidate(ctx, invalidated...)

	return post, nil
}

// Like records a like on a post
func (c *Client) Like(ctx context.Context, postID string) error {
	ctx, span := telemetry.StartSpan(ctx, "gateway.like")
	defer span.End()

	path := "/post/" + url.PathEscape(postID) + "/like"
	if err := c.do(ctx, http.MethodPost, path, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to like post %s: %w", postID, err)
	}
	return nil
}

// Dislike records a dislike on a post
func (c *Client) Dislike(ctx context.Context, postID string) error {
	ctx, span := telemetry.StartSpan(ctx, "gateway.dislike")
	defer span.End()

	path := "/post/" + url.PathEscape(postID) + "/dislike"
	if err := c.do(ctx, http.MethodPost, path, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to dislike post %s: %w", postID, err)
	}
	return nil
}

// RemoveReaction withdraws the caller's reaction from a post
func (c *Client) RemoveReaction(ctx context.Context, postID string) error {
	ctx, span := telemetry.StartSpan(ctx, "gateway.remove_reaction")
	defer span.End()

	path := "/post/" + url.PathEscape(postID) + "/remove_reaction"
	if err := c.do(ctx, http.MethodPost, path, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to remove reaction from post %s: %w", postID, err)
	}
	return nil
}

// Comment submits a comment on a post
func (c *Client) Comment(ctx context.Context, postID, text string) error {
	ctx, span := telemetry.StartSpan(ctx, "gateway.comment")
	defer span.End()

	path := "/post/" + url.PathEscape(postID) + "/comments"
	if err := c.do(ctx, http.MethodPost, path, nil, map[string]string{"text": text}, nil); err != nil {
		return fmt.Errorf("failed to comment on post %s: %w", postID, err)
	}
	return nil
}

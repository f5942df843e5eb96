// Package session owns the view state machine: which view is active, which
// entity is loaded, the displayed post list and the loading flag. All
// mutation goes through the controller; the shell reads snapshots only.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/radiy-net/radiy-client/internal/models"
	"github.com/radiy-net/radiy-client/internal/reaction"
	"github.com/radiy-net/radiy-client/internal/tokens"
	"github.com/radiy-net/radiy-client/pkg/config"
	"github.com/radiy-net/radiy-client/pkg/logging"
	"github.com/radiy-net/radiy-client/pkg/telemetry"
)

// Controller orchestrates navigation, data fetching and optimistic updates.
//
// Every accepted transition takes a new generation number; a fetch result or
// delayed loading reset whose generation is no longer current is discarded,
// so a slow earlier navigation can never overwrite a later one.
type Controller struct {
	mu     sync.Mutex
	src    Source
	tokens *tokens.Store
	logger *zap.Logger

	loadingDelay time.Duration
	now          func() time.Time

	gen   uint64
	state State
}

// NewController creates a controller starting on the feed view
func NewController(src Source, store *tokens.Store, cfg *config.SessionConfig) *Controller {
	return &Controller{
		src:          src,
		tokens:       store,
		logger:       logging.GetLogger().With(zap.String("component", "session")),
		loadingDelay: cfg.LoadingDelay,
		now:          time.Now,
		state:        State{View: ViewFeed},
	}
}

// Snapshot returns a copy of the current view state
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Bootstrap runs the startup authentication check: with a stored access token
// it fetches the current user and loads the initial data; a failed check
// clears the stored tokens and leaves the session unauthenticated.
func (c *Controller) Bootstrap(ctx context.Context) error {
	if c.tokens.Access() == "" {
		return nil
	}

	ctx, span := telemetry.StartSpan(ctx, "session.bootstrap")
	defer span.End()

	user, err := c.src.Me(ctx)
	if err != nil {
		c.logger.Warn("Auth check failed", zap.Error(err))
		if cerr := c.tokens.Clear(); cerr != nil {
			c.logger.Warn("Failed to clear stored tokens", zap.Error(cerr))
		}
		return err
	}

	c.mu.Lock()
	c.gen++
	g := c.gen
	c.state.Authenticated = true
	c.state.CurrentUser = &user
	c.mu.Unlock()

	return c.loadInitial(ctx, g)
}

// Login signs in, stores the token pair and establishes the session
func (c *Controller) Login(ctx context.Context, username, password string) error {
	ctx, span := telemetry.StartSpan(ctx, "session.login")
	defer span.End()

	pair, err := c.src.SignIn(ctx, username, password)
	if err != nil {
		c.logger.Error("Sign in failed", zap.String("username", username), zap.Error(err))
		return err
	}
	if err := c.tokens.Set(pair.Access, pair.Refresh); err != nil {
		c.logger.Warn("Failed to persist tokens", zap.Error(err))
	}

	return c.establish(ctx)
}

// Register signs up, stores the returned token pair and establishes the session
func (c *Controller) Register(ctx context.Context, username, password, visibleName string) error {
	ctx, span := telemetry.StartSpan(ctx, "session.register")
	defer span.End()

	pair, err := c.src.SignUp(ctx, username, password, visibleName)
	if err != nil {
		c.logger.Error("Sign up failed", zap.String("username", username), zap.Error(err))
		return err
	}
	if err := c.tokens.Set(pair.Access, pair.Refresh); err != nil {
		c.logger.Warn("Failed to persist tokens", zap.Error(err))
	}

	return c.establish(ctx)
}

// establish fetches the current user, resets the view to the feed and loads
// the initial data, with the loading flag held for the configured delay.
func (c *Controller) establish(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	g := c.gen
	c.state.Loading = true
	c.mu.Unlock()
	defer c.clearLoadingAfter(g)

	user, err := c.src.Me(ctx)
	if err != nil {
		c.logger.Error("Failed to fetch current user", zap.Error(err))
		c.setError(g, err)
		return err
	}

	c.mu.Lock()
	if g == c.gen {
		c.state.Authenticated = true
		c.state.CurrentUser = &user
		c.state.View = ViewFeed
		c.state.ActiveEntityID = ""
		c.state.ActiveProfile = nil
		c.state.ActiveGroup = nil
		c.state.LastError = ""
	}
	c.mu.Unlock()

	return c.loadInitial(ctx, g)
}

// Logout revokes the session remotely and resets all view state
func (c *Controller) Logout(ctx context.Context) {
	if err := c.src.SignOut(ctx); err != nil {
		c.logger.Warn("Sign out failed", zap.Error(err))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.state = State{View: ViewFeed}
}

// ToggleChat flips the chat overlay flag and returns the new value
func (c *Controller) ToggleChat() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ChatOpen = !c.state.ChatOpen
	return c.state.ChatOpen
}

// Navigate runs the view transition contract. It reports whether the
// transition was accepted: navigating to the current view with the current
// entity id is a no-op for every view but search, which always re-executes.
//
// On acceptance the loading flag is raised, derived entity state is cleared
// and exactly one fetch plan runs for the target view. Fetch failures leave
// the previously displayed data untouched and surface on State.LastError; the
// loading flag falls after the configured delay either way.
func (c *Controller) Navigate(ctx context.Context, view View, idOrQuery string) (bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "session.navigate")
	defer span.End()

	c.mu.Lock()
	if !view.Valid() {
		c.mu.Unlock()
		return false, ErrUnknownView
	}
	if (view == ViewProfile || view == ViewGroup) && idOrQuery == "" {
		c.mu.Unlock()
		return false, ErrMissingEntityID
	}
	if view == c.state.View && idOrQuery == c.state.ActiveEntityID && view != ViewSearch {
		c.mu.Unlock()
		return false, nil
	}

	c.gen++
	g := c.gen
	c.state.View = view
	c.state.Loading = true
	c.state.ActiveProfile = nil
	c.state.ActiveGroup = nil
	c.state.LastError = ""
	switch view {
	case ViewProfile, ViewGroup:
		c.state.ActiveEntityID = idOrQuery
	case ViewSearch:
		c.state.ActiveEntityID = ""
		c.state.SearchQuery = idOrQuery
	default:
		c.state.ActiveEntityID = ""
	}
	c.mu.Unlock()
	defer c.clearLoadingAfter(g)

	var err error
	switch view {
	case ViewFeed:
		err = c.loadFeed(ctx, g)
	case ViewProfile:
		err = c.loadProfile(ctx, g, idOrQuery)
	case ViewGroup:
		err = c.loadGroup(ctx, g, idOrQuery)
	case ViewSearch, ViewChats:
		// The search page and the messenger fetch their own data.
	}
	if err != nil {
		c.logger.Error("Navigation data fetch failed",
			zap.String("view", string(view)),
			zap.String("id_or_query", idOrQuery),
			zap.Error(err))
		c.setError(g, err)
		return true, err
	}
	return true, nil
}

// CreatePost validates and submits a new post, then prepends the result to
// the displayed list without refetching. The loading flag here is interaction
// feedback only and falls as soon as the call settles.
func (c *Controller) CreatePost(ctx context.Context, text string) (models.Post, error) {
	ctx, span := telemetry.StartSpan(ctx, "session.create_post")
	defer span.End()

	text = strings.TrimSpace(text)
	if text == "" {
		return models.Post{}, ErrEmptyPost
	}

	c.mu.Lock()
	if !c.state.Authenticated {
		c.mu.Unlock()
		return models.Post{}, ErrNotAuthenticated
	}
	var communityID string
	if c.state.View == ViewGroup {
		communityID = c.state.ActiveEntityID
	}
	c.state.Loading = true
	c.mu.Unlock()

	post, err := c.src.CreatePost(ctx, text, "", communityID)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Loading = false
	if err != nil {
		c.logger.Error("Create post failed", zap.Error(err))
		c.state.LastError = err.Error()
		return models.Post{}, err
	}

	// The prepended post must sort above everything already displayed, even
	// when server and client clocks disagree.
	if len(c.state.Posts) > 0 {
		top := c.state.Posts[0].CreatedAt
		if !post.CreatedAt.After(top) {
			if now := c.now(); now.After(top) {
				post.CreatedAt = now
			} else {
				post.CreatedAt = top.Add(time.Millisecond)
			}
		}
	}
	c.state.Posts = append([]models.Post{post}, c.state.Posts...)
	c.state.LastError = ""

	return post, nil
}

// React applies the requested reaction to a displayed post optimistically,
// pushes it to the source and restores the exact previous snapshot when the
// push fails. The returned state is what the shell should display.
func (c *Controller) React(ctx context.Context, postID string, kind models.ReactionKind) (reaction.State, error) {
	ctx, span := telemetry.StartSpan(ctx, "session.react")
	defer span.End()

	if kind != models.ReactionLike && kind != models.ReactionDislike {
		return reaction.State{}, ErrUnknownReaction
	}

	c.mu.Lock()
	idx := c.findPost(postID)
	if idx < 0 {
		c.mu.Unlock()
		return reaction.State{}, ErrUnknownPost
	}
	prev := reaction.FromPost(&c.state.Posts[idx])
	next := reaction.Apply(prev, kind)
	reaction.ApplyToPost(&c.state.Posts[idx], next)
	c.mu.Unlock()

	if err := reaction.Send(ctx, c.src, postID, prev.Kind, kind); err != nil {
		c.mu.Lock()
		if idx := c.findPost(postID); idx >= 0 {
			reaction.ApplyToPost(&c.state.Posts[idx], prev)
		}
		c.mu.Unlock()
		c.logger.Error("Reaction rejected, rolled back",
			zap.String("post_id", postID),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return prev, err
	}

	return next, nil
}

// findPost returns the index of a displayed post, or -1. Callers hold the lock.
func (c *Controller) findPost(postID string) int {
	for i := range c.state.Posts {
		if c.state.Posts[i].ID == postID {
			return i
		}
	}
	return -1
}

// loadInitial fetches the sidebar data (communities and recent contacts, in
// parallel) and then the feed. Partial failures are logged and surfaced but
// never clear data that already loaded.
func (c *Controller) loadInitial(ctx context.Context, g uint64) error {
	var (
		groups []models.Community
		recent []models.User
	)

	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		groups, err = c.src.MyCommunities(gctx)
		return err
	})
	eg.Go(func() error {
		var err error
		recent, err = c.src.Followers(gctx)
		return err
	})
	if err := eg.Wait(); err != nil {
		c.logger.Error("Failed loading initial data", zap.Error(err))
		c.setError(g, err)
	} else {
		c.mu.Lock()
		if g == c.gen {
			c.state.Groups = groups
			c.state.Recent = recent
		}
		c.mu.Unlock()
	}

	return c.loadFeed(ctx, g)
}

// loadFeed replaces the displayed posts with the global feed
func (c *Controller) loadFeed(ctx context.Context, g uint64) error {
	posts, err := c.src.Posts(ctx)
	if err != nil {
		return err
	}
	models.SortPostsDesc(posts)

	c.mu.Lock()
	defer c.mu.Unlock()
	if g != c.gen {
		return nil
	}
	c.state.Posts = posts
	return nil
}

// loadProfile fetches a user and that user's posts in parallel; the profile
// only renders when both arrive.
func (c *Controller) loadProfile(ctx context.Context, g uint64, id string) error {
	var (
		user  models.User
		posts []models.Post
	)

	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		user, err = c.src.UserByID(gctx, id)
		return err
	})
	eg.Go(func() error {
		var err error
		posts, err = c.src.PostsByUser(gctx, id)
		return err
	})
	if err := eg.Wait(); err != nil {
		return err
	}
	models.SortPostsDesc(posts)

	c.mu.Lock()
	defer c.mu.Unlock()
	if g != c.gen {
		return nil
	}
	c.state.ActiveProfile = &user
	c.state.Posts = posts
	return nil
}

// loadGroup fetches a community and its posts in parallel
func (c *Controller) loadGroup(ctx context.Context, g uint64, id string) error {
	var (
		group models.Community
		posts []models.Post
	)

	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		group, err = c.src.CommunityByID(gctx, id)
		return err
	})
	eg.Go(func() error {
		var err error
		posts, err = c.src.PostsByCommunity(gctx, id)
		return err
	})
	if err := eg.Wait(); err != nil {
		return err
	}
	models.SortPostsDesc(posts)

	c.mu.Lock()
	defer c.mu.Unlock()
	if g != c.gen {
		return nil
	}
	c.state.ActiveGroup = &group
	c.state.Posts = posts
	return nil
}

// setError records a user-visible error unless the transition is stale
func (c *Controller) setError(g uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if g == c.gen {
		c.state.LastError = err.Error()
	}
}

// clearLoadingAfter drops the loading flag after the configured delay. The
// generation check keeps a superseded transition from resetting the flag the
// newer one raised.
func (c *Controller) clearLoadingAfter(g uint64) {
	clear := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if g == c.gen {
			c.state.Loading = false
		}
	}
	if c.loadingDelay <= 0 {
		clear()
		return
	}
	time.AfterFunc(c.loadingDelay, clear)
}

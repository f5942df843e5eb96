// Package source provides the in-memory data source used for demo runs and
// tests. It satisfies the same capability interface as the gateway, so the
// controller cannot tell the two apart.
package source

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/radiy-net/radiy-client/internal/models"
	"github.com/radiy-net/radiy-client/internal/session"
)

// Static serves fixture data from memory. Mutations (posts, reactions, chat
// messages) are kept for the lifetime of the process.
type Static struct {
	mu          sync.Mutex
	me          models.User
	users       map[string]models.User
	communities map[string]models.Community
	posts       []models.Post
	chats       map[string][]models.ChatMessage
}

var _ session.Source = (*Static)(nil)

// NewStatic creates a provider seeded with demo fixtures
func NewStatic() *Static {
	now := time.Now()

	me := models.User{
		Username:    "alex_design",
		VisibleName: "Alexey S.",
		AvatarURL:   "https://picsum.photos/id/1005/200/200",
		Status:      models.StatusOnline,
		Bio:         "UI/UX designer, frontend developer",
		Stats:       models.UserStats{Friends: 142, Followers: 853, Posts: 24},
	}
	marina := models.User{
		Username:    "marina_art",
		VisibleName: "Marina V.",
		AvatarURL:   "https://picsum.photos/id/338/200/200",
		Status:      models.StatusOnline,
		Bio:         "Graphic designer. Logos and illustrations.",
		Stats:       models.UserStats{Friends: 320, Followers: 1200, Posts: 142},
	}
	ivan := models.User{
		Username:    "ivan_dev",
		VisibleName: "Ivan D.",
		AvatarURL:   "https://picsum.photos/id/1025/200/200",
		Status:      models.StatusOffline,
		Bio:         "Fullstack developer. JS, Python, Go.",
		Stats:       models.UserStats{Friends: 80, Followers: 230, Posts: 15},
	}
	svetlana := models.User{
		Username:    "svetlana_k",
		VisibleName: "Svetlana K.",
		AvatarURL:   "https://picsum.photos/id/237/200/200",
		Status:      models.StatusOnline,
		Bio:         "Dogs and morning coffee.",
		Stats:       models.UserStats{Friends: 450, Followers: 890, Posts: 330},
	}

	design := models.Community{
		ID:          "design-club",
		Name:        "Design Club",
		AvatarURL:   "https://picsum.photos/id/180/200/200",
		Description: "Interfaces, typography and everything in between.",
		Stats:       models.CommunityStats{Subscribers: 3200, Posts: 540},
		Details:     models.CommunityDetails{CreatedDate: "2021-03-14", Admin: marina, Moderators: []models.User{ivan}},
	}
	gophers := models.Community{
		ID:          "gophers",
		Name:        "Gophers",
		AvatarURL:   "https://picsum.photos/id/160/200/200",
		Description: "Go developers community.",
		Stats:       models.CommunityStats{Subscribers: 1800, Posts: 260},
		Details:     models.CommunityDetails{CreatedDate: "2020-11-02", Admin: ivan},
	}

	posts := []models.Post{
		{
			ID:        uuid.NewString(),
			Author:    marina,
			Text:      "New logo draft is up, feedback welcome!",
			Likes:     12,
			Dislikes:  1,
			CreatedAt: now.Add(-2 * time.Hour),
		},
		{
			ID:          uuid.NewString(),
			Author:      ivan,
			Text:        "Shipped the first release of our side project today.",
			Likes:       34,
			Dislikes:    0,
			CreatedAt:   now.Add(-5 * time.Hour),
			CommunityID: gophers.ID,
		},
		{
			ID:        uuid.NewString(),
			Author:    svetlana,
			Text:      "Morning walk, two dogs, one coffee.",
			Likes:     7,
			Dislikes:  2,
			CreatedAt: now.Add(-26 * time.Hour),
		},
		{
			ID:          uuid.NewString(),
			Author:      marina,
			Text:        "Typography talk this Friday in Design Club.",
			Likes:       21,
			Dislikes:    0,
			CreatedAt:   now.Add(-48 * time.Hour),
			CommunityID: design.ID,
		},
	}

	return &Static{
		me: me,
		users: map[string]models.User{
			me.Username:       me,
			marina.Username:   marina,
			ivan.Username:     ivan,
			svetlana.Username: svetlana,
		},
		communities: map[string]models.Community{
			design.ID:  design,
			gophers.ID: gophers,
		},
		posts: posts,
		chats: map[string][]models.ChatMessage{
			ivan.Username: {
				{ID: uuid.NewString(), SenderID: ivan.Username, Text: "Did you see the release?", Timestamp: now.Add(-3 * time.Hour)},
				{ID: uuid.NewString(), SenderID: me.Username, Text: "Looks great!", Timestamp: now.Add(-2 * time.Hour)},
			},
		},
	}
}

// SignIn accepts any non-empty credentials and returns a demo token pair
func (s *Static) SignIn(_ context.Context, username, password string) (models.TokenPair, error) {
	if username == "" || password == "" {
		return models.TokenPair{}, fmt.Errorf("username and password are required")
	}
	return models.TokenPair{Access: "demo-access", Refresh: "demo-refresh"}, nil
}

// SignUp registers the user in memory and signs them in
func (s *Static) SignUp(ctx context.Context, username, password, visibleName string) (models.TokenPair, error) {
	if username == "" || password == "" {
		return models.TokenPair{}, fmt.Errorf("username and password are required")
	}

	s.mu.Lock()
	if _, ok := s.users[username]; !ok {
		s.users[username] = models.User{
			Username:    username,
			VisibleName: visibleName,
			Status:      models.StatusOnline,
		}
	}
	s.mu.Unlock()

	return s.SignIn(ctx, username, password)
}

// Me returns the demo user
func (s *Static) Me(_ context.Context) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.me, nil
}

// SignOut is a no-op for the demo provider
func (s *Static) SignOut(_ context.Context) error {
	return nil
}

// Followers returns everyone but the demo user
func (s *Static) Followers(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.User, 0, len(s.users)-1)
	for name, u := range s.users {
		if name != s.me.Username {
			out = append(out, u)
		}
	}
	return out, nil
}

// UserByID returns a fixture user by username
func (s *Static) UserByID(_ context.Context, username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return models.User{}, fmt.Errorf("user %s not found", username)
	}
	return u, nil
}

// Posts returns the full feed
func (s *Static) Posts(_ context.Context) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Post(nil), s.posts...), nil
}

// PostsByUser returns the posts authored by a user
func (s *Static) PostsByUser(_ context.Context, userID string) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Post
	for _, p := range s.posts {
		if p.Author.Username == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

// PostsByCommunity returns the posts of a community
func (s *Static) PostsByCommunity(_ context.Context, communityID string) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Post
	for _, p := range s.posts {
		if p.CommunityID == communityID {
			out = append(out, p)
		}
	}
	return out, nil
}

// CreatePost appends a new post authored by the demo user
func (s *Static) CreatePost(_ context.Context, text, image, communityID string) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := models.Post{
		ID:          uuid.NewString(),
		Author:      s.me,
		Text:        text,
		Image:       image,
		CreatedAt:   time.Now(),
		CommunityID: communityID,
	}
	s.posts = append(s.posts, post)
	return post, nil
}

// Like records a like on a fixture post
func (s *Static) Like(_ context.Context, postID string) error {
	return s.react(postID, models.ReactionLike)
}

// Dislike records a dislike on a fixture post
func (s *Static) Dislike(_ context.Context, postID string) error {
	return s.react(postID, models.ReactionDislike)
}

// RemoveReaction withdraws the demo user's reaction from a fixture post
func (s *Static) RemoveReaction(_ context.Context, postID string) error {
	return s.react(postID, models.ReactionNone)
}

func (s *Static) react(postID string, kind models.ReactionKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID != postID {
			continue
		}
		prev := s.posts[i].Reaction()
		switch prev {
		case models.ReactionLike:
			if s.posts[i].Likes > 0 {
				s.posts[i].Likes--
			}
		case models.ReactionDislike:
			if s.posts[i].Dislikes > 0 {
				s.posts[i].Dislikes--
			}
		}
		switch kind {
		case models.ReactionLike:
			s.posts[i].Likes++
		case models.ReactionDislike:
			s.posts[i].Dislikes++
		}
		s.posts[i].SetReaction(kind)
		return nil
	}
	return fmt.Errorf("post %s not found", postID)
}

// Comment accepts and drops a comment; the demo feed does not render threads
func (s *Static) Comment(_ context.Context, postID, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("comment text is required")
	}
	return nil
}

// MyCommunities returns the fixture communities
func (s *Static) MyCommunities(_ context.Context) ([]models.Community, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Community, 0, len(s.communities))
	for _, c := range s.communities {
		out = append(out, c)
	}
	return out, nil
}

// CommunityByID returns a fixture community
func (s *Static) CommunityByID(_ context.Context, id string) (models.Community, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.communities[id]
	if !ok {
		return models.Community{}, fmt.Errorf("community %s not found", id)
	}
	return c, nil
}

// JoinCommunity bumps the subscriber count of a fixture community
func (s *Static) JoinCommunity(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.communities[id]
	if !ok {
		return fmt.Errorf("community %s not found", id)
	}
	c.Stats.Subscribers++
	s.communities[id] = c
	return nil
}

// Search matches users and communities by case-insensitive substring
func (s *Static) Search(_ context.Context, q string) ([]models.SearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q = strings.ToLower(strings.TrimSpace(q))
	var out []models.SearchResult
	if q == "" {
		return out, nil
	}

	for _, u := range s.users {
		if strings.Contains(strings.ToLower(u.VisibleName), q) ||
			strings.Contains(strings.ToLower(u.Username), q) {
			out = append(out, models.SearchResult{
				ID:       "user-" + u.Username,
				Title:    u.VisibleName,
				Type:     models.SearchTypeUser,
				Image:    u.AvatarURL,
				EntityID: u.Username,
			})
		}
	}
	for _, c := range s.communities {
		if strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, models.SearchResult{
				ID:       "community-" + c.ID,
				Title:    c.Name,
				Type:     models.SearchTypeCommunity,
				Image:    c.AvatarURL,
				EntityID: c.ID,
			})
		}
	}
	return out, nil
}

// ChatHistory returns the message history with a user
func (s *Static) ChatHistory(_ context.Context, userID string) ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatMessage(nil), s.chats[userID]...), nil
}

// SendChatMessage appends a message to the history with a user
func (s *Static) SendChatMessage(_ context.Context, userID, text string) (models.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return models.ChatMessage{}, fmt.Errorf("message text is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := models.ChatMessage{
		ID:        uuid.NewString(),
		SenderID:  s.me.Username,
		Text:      text,
		Timestamp: time.Now(),
	}
	s.chats[userID] = append(s.chats[userID], msg)
	return msg, nil
}

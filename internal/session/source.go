package session

import (
	"context"

	"github.com/radiy-net/radiy-client/internal/models"
)

// Source is the data-source capability the controller is parameterized by.
// The gateway satisfies it against the remote API; the static provider
// satisfies it from in-memory fixtures for demo runs and tests.
type Source interface {
	SignIn(ctx context.Context, username, password string) (models.TokenPair, error)
	SignUp(ctx context.Context, username, password, visibleName string) (models.TokenPair, error)
	Me(ctx context.Context) (models.User, error)
	SignOut(ctx context.Context) error

	Followers(ctx context.Context) ([]models.User, error)
	UserByID(ctx context.Context, username string) (models.User, error)

	Posts(ctx context.Context) ([]models.Post, error)
	PostsByUser(ctx context.Context, userID string) ([]models.Post, error)
	PostsByCommunity(ctx context.Context, communityID string) ([]models.Post, error)
	CreatePost(ctx context.Context, text, image, communityID string) (models.Post, error)
	Like(ctx context.Context, postID string) error
	Dislike(ctx context.Context, postID string) error
	RemoveReaction(ctx context.Context, postID string) error
	Comment(ctx context.Context, postID, text string) error

	MyCommunities(ctx context.Context) ([]models.Community, error)
	CommunityByID(ctx context.Context, id string) (models.Community, error)
	JoinCommunity(ctx context.Context, id string) error

	Search(ctx context.Context, q string) ([]models.SearchResult, error)

	ChatHistory(ctx context.Context, userID string) ([]models.ChatMessage, error)
	SendChatMessage(ctx context.Context, userID, text string) (models.ChatMessage, error)
}

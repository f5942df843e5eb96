// Package shell is the local HTTP contract the browser shell renders
// against. The presentational layer is an external collaborator: it reads
// state snapshots and posts user interactions, nothing else. Search and chat
// endpoints pass straight through to the data source because those surfaces
// own their data lifecycle.
package shell

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/radiy-net/radiy-client/internal/session"
	"github.com/radiy-net/radiy-client/pkg/logging"
)

// Router exposes the session controller and data source to the shell
type Router struct {
	ctrl   *session.Controller
	src    session.Source
	logger *zap.Logger
}

// NewRouter creates a new shell router
func NewRouter(ctrl *session.Controller, src session.Source) *Router {
	return &Router{
		ctrl:   ctrl,
		src:    src,
		logger: logging.GetLogger().With(zap.String("component", "shell")),
	}
}

// SetupRoutes sets up all shell routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.GET("/health", r.healthHandler)

	engine.GET("/state", r.stateHandler)
	engine.POST("/navigate", r.navigateHandler)
	engine.POST("/chat/toggle", r.toggleChatHandler)

	engine.POST("/auth/login", r.loginHandler)
	engine.POST("/auth/register", r.registerHandler)
	engine.POST("/auth/logout", r.logoutHandler)

	engine.POST("/posts", r.createPostHandler)
	engine.POST("/posts/:id/reaction", r.reactionHandler)
	engine.POST("/posts/:id/comments", r.commentHandler)

	engine.POST("/communities/:id/join", r.joinCommunityHandler)

	engine.GET("/search", r.searchHandler)

	engine.GET("/chats/:userId", r.chatHistoryHandler)
	engine.POST("/chats/:userId", r.sendChatHandler)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "OK",
		"service": "radiy-client",
	})
}

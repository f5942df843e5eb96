package shell

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/radiy-net/radiy-client/internal/gateway"
	"github.com/radiy-net/radiy-client/internal/models"
	"github.com/radiy-net/radiy-client/internal/session"
)

// statusFor maps controller and upstream errors onto the shell contract:
// client-side validation is 4xx, an invalid token is 401, anything the remote
// API rejected or dropped is 502.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrUnknownView),
		errors.Is(err, session.ErrMissingEntityID),
		errors.Is(err, session.ErrEmptyPost),
		errors.Is(err, session.ErrUnknownReaction):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNotAuthenticated),
		errors.Is(err, gateway.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, session.ErrUnknownPost):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// stateHandler returns the current view state snapshot
func (r *Router) stateHandler(c *gin.Context) {
	c.JSON(http.StatusOK, r.ctrl.Snapshot())
}

type navigateRequest struct {
	View      string `json:"view" binding:"required"`
	IDOrQuery string `json:"id_or_query"`
}

// navigateHandler runs a view transition. A fetch failure still returns the
// snapshot; the shell shows State.LastError instead of losing the prior view.
func (r *Router) navigateHandler(c *gin.Context) {
	var req navigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accepted, err := r.ctrl.Navigate(c.Request.Context(), session.View(req.View), req.IDOrQuery)
	if err != nil && !accepted {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accepted":      accepted,
		"scroll_to_top": accepted && err == nil,
		"state":         r.ctrl.Snapshot(),
	})
}

// toggleChatHandler flips the chat overlay flag
func (r *Router) toggleChatHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"chat_open": r.ctrl.ToggleChat()})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// loginHandler signs the user in and returns the established state
func (r *Router) loginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := r.ctrl.Login(c.Request.Context(), req.Username, req.Password); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, r.ctrl.Snapshot())
}

type registerRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	VisibleName string `json:"visible_name"`
}

// registerHandler signs a new user up and returns the established state
func (r *Router) registerHandler(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := r.ctrl.Register(c.Request.Context(), req.Username, req.Password, req.VisibleName); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, r.ctrl.Snapshot())
}

// logoutHandler revokes the session and returns the reset state
func (r *Router) logoutHandler(c *gin.Context) {
	r.ctrl.Logout(c.Request.Context())
	c.JSON(http.StatusOK, r.ctrl.Snapshot())
}

type createPostRequest struct {
	Text string `json:"text"`
}

// createPostHandler submits a new post and returns the created entity
func (r *Router) createPostHandler(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := r.ctrl.CreatePost(c.Request.Context(), req.Text)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, post)
}

type reactionRequest struct {
	Kind string `json:"kind" binding:"required"`
}

// reactionHandler toggles the caller's reaction on a displayed post and
// returns the (optimistically confirmed or rolled back) reaction state.
func (r *Router) reactionHandler(c *gin.Context) {
	var req reactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := r.ctrl.React(c.Request.Context(), c.Param("id"), models.ReactionKind(req.Kind))
	if err != nil {
		status := statusFor(err)
		if status == http.StatusBadGateway {
			// Rolled back; report the restored state alongside the error.
			c.JSON(status, gin.H{
				"error":    err.Error(),
				"reaction": state.Kind,
				"likes":    state.Likes,
				"dislikes": state.Dislikes,
			})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reaction": state.Kind,
		"likes":    state.Likes,
		"dislikes": state.Dislikes,
	})
}

type commentRequest struct {
	Text string `json:"text" binding:"required"`
}

// commentHandler submits a comment on a post
func (r *Router) commentHandler(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := r.src.Comment(c.Request.Context(), c.Param("id"), req.Text); err != nil {
		r.logger.Error("Comment failed", zap.String("post_id", c.Param("id")), zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// joinCommunityHandler subscribes the current user to a community
func (r *Router) joinCommunityHandler(c *gin.Context) {
	if err := r.src.JoinCommunity(c.Request.Context(), c.Param("id")); err != nil {
		r.logger.Error("Join community failed", zap.String("community_id", c.Param("id")), zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// searchHandler queries the data source; the search page owns this fetch,
// the navigation state machine only records the query.
func (r *Router) searchHandler(c *gin.Context) {
	results, err := r.src.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		r.logger.Error("Search failed", zap.String("q", c.Query("q")), zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if results == nil {
		results = []models.SearchResult{}
	}
	c.JSON(http.StatusOK, results)
}

// chatHistoryHandler returns the message history with another user
func (r *Router) chatHistoryHandler(c *gin.Context) {
	messages, err := r.src.ChatHistory(c.Request.Context(), c.Param("userId"))
	if err != nil {
		r.logger.Error("Chat history failed", zap.String("user_id", c.Param("userId")), zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	c.JSON(http.StatusOK, messages)
}

type chatMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// sendChatHandler sends a direct message to another user
func (r *Router) sendChatHandler(c *gin.Context) {
	var req chatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := r.src.SendChatMessage(c.Request.Context(), c.Param("userId"), req.Text)
	if err != nil {
		r.logger.Error("Send chat message failed", zap.String("user_id", c.Param("userId")), zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, message)
}

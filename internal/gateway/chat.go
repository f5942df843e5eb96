package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/radiy-net/radiy-client/internal/models"
	"github.com/radiy-net/radiy-client/pkg/telemetry"
)

// ChatHistory fetches the message history with another user
func (c *Client) ChatHistory(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	ctx, span := telemetry.StartSpan(ctx, "gateway.chat_history")
	defer span.End()

	var messages []models.ChatMessage
	path := "/chats/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &messages); err != nil {
		return nil, fmt.Errorf("failed to fetch chat with %s: %w", userID, err)
	}
	return messages, nil
}

// SendChatMessage sends a direct message to another user
func (c *Client) SendChatMessage(ctx context.Context, userID, text string) (models.ChatMessage, error) {
	ctx, span := telemetry.StartSpan(ctx, "gateway.send_chat_message")
	defer span.End()

	var message models.ChatMessage
	path := "/chats/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodPost, path, nil, map[string]string{"text": text}, &message); err != nil {
		return models.ChatMessage{}, fmt.Errorf("failed to send message to %s: %w", userID, err)
	}
	return message, nil
}

package apiclient

import (
	"context"
	"fmt"
)

type ChatbotClient struct {
	c *Client
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatReply struct {
	Reply string `json:"reply"`
}

// Send forwards one user message for a chat session and returns the bot's
// reply text.
func (cb *ChatbotClient) Send(ctx context.Context, sessionID, message string) (string, error) {
	if sessionID == "" {
		return "", fmt.Errorf("session id is required")
	}
	if message == "" {
		return "", fmt.Errorf("message is required")
	}

	var reply chatReply
	if err := cb.c.post(ctx, "/chatbot/messages", &chatRequest{SessionID: sessionID, Message: message}, &reply); err != nil {
		return "", err
	}
	return reply.Reply, nil
}

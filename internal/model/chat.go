package model

import "time"

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is ephemeral and session-scoped; nothing outlives the widget.
type ChatMessage struct {
	SessionID string    `json:"session_id"`
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	SentAt    time.Time `json:"sent_at"`
}

// Package chat drives the floating chat widget. The transcript lives in
// memory for the life of one widget session and is dropped on close.
package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

// Bot is the chatbot resource surface.
type Bot interface {
	Send(ctx context.Context, sessionID, message string) (string, error)
}

const fallbackReply = "Sorry, I can't answer right now. Please try again in a moment."

// Widget is one open chat session.
type Widget struct {
	bot Bot
	log zerolog.Logger
	now func() time.Time

	mu        sync.Mutex
	sessionID string
	messages  []model.ChatMessage
}

func NewWidget(bot Bot, log zerolog.Logger) *Widget {
	return &Widget{
		bot: bot,
		log: log,
		now: time.Now,
		// The session key mixes a timestamp with a random component so
		// two widgets opened in the same instant never share a session.
		sessionID: fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()),
	}
}

func (w *Widget) SessionID() string {
	return w.sessionID
}

// Send appends the user's message, asks the bot, and appends the reply.
// A backend failure becomes a fallback assistant line instead of an error;
// the widget never crashes the page.
func (w *Widget) Send(ctx context.Context, text string) []model.ChatMessage {
	if text == "" {
		return w.Transcript()
	}

	w.append(model.ChatRoleUser, text)

	reply, err := w.bot.Send(ctx, w.sessionID, text)
	if err != nil {
		w.log.Warn().Err(err).Str("session_id", w.sessionID).Msg("chatbot send failed")
		reply = fallbackReply
	}
	w.append(model.ChatRoleAssistant, reply)

	return w.Transcript()
}

// Transcript returns a copy of the session's messages in order.
func (w *Widget) Transcript() []model.ChatMessage {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]model.ChatMessage, len(w.messages))
	copy(out, w.messages)
	return out
}

// Close drops the transcript; the session does not outlive the widget.
func (w *Widget) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.messages = nil
}

func (w *Widget) append(role model.ChatRole, text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.messages = append(w.messages, model.ChatMessage{
		SessionID: w.sessionID,
		Role:      role,
		Text:      text,
		SentAt:    w.now(),
	})
}

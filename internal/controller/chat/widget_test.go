package chat

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

type fakeBot struct {
	sessions []string
	err      error
}

func (f *fakeBot) Send(_ context.Context, sessionID, message string) (string, error) {
	f.sessions = append(f.sessions, sessionID)
	if f.err != nil {
		return "", f.err
	}
	return "echo: " + message, nil
}

func TestSendBuildsOrderedTranscript(t *testing.T) {
	bot := &fakeBot{}
	w := NewWidget(bot, zerolog.Nop())

	w.Send(context.Background(), "do I need a referral?")
	transcript := w.Send(context.Background(), "thanks")

	require.Len(t, transcript, 4)
	assert.Equal(t, model.ChatRoleUser, transcript[0].Role)
	assert.Equal(t, "do I need a referral?", transcript[0].Text)
	assert.Equal(t, model.ChatRoleAssistant, transcript[1].Role)
	assert.Equal(t, "echo: do I need a referral?", transcript[1].Text)
	assert.Equal(t, "thanks", transcript[2].Text)

	// Every exchange rides the same session key.
	assert.Equal(t, []string{w.SessionID(), w.SessionID()}, bot.sessions)
}

func TestBotFailureBecomesFallbackLine(t *testing.T) {
	bot := &fakeBot{err: fmt.Errorf("upstream timeout")}
	w := NewWidget(bot, zerolog.Nop())

	transcript := w.Send(context.Background(), "hello?")

	require.Len(t, transcript, 2)
	assert.Equal(t, model.ChatRoleAssistant, transcript[1].Role)
	assert.Equal(t, fallbackReply, transcript[1].Text)
}

func TestEmptyMessageIsIgnored(t *testing.T) {
	bot := &fakeBot{}
	w := NewWidget(bot, zerolog.Nop())

	assert.Empty(t, w.Send(context.Background(), ""))
	assert.Empty(t, bot.sessions)
}

func TestCloseDropsTranscriptAndSessionsAreUnique(t *testing.T) {
	bot := &fakeBot{}
	w := NewWidget(bot, zerolog.Nop())
	w.Send(context.Background(), "hi")
	require.NotEmpty(t, w.Transcript())

	w.Close()
	assert.Empty(t, w.Transcript())

	assert.NotEqual(t, w.SessionID(), NewWidget(bot, zerolog.Nop()).SessionID())
}

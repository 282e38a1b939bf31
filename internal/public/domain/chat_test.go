package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewChatSession(t *testing.T) {
	t.Run("starts closed with the welcome message", func(t *testing.T) {
		session := NewChatSession("s-1", "Namaste!")
		require.Equal(t, SessionClosed, session.State())
		require.False(t, session.InputFocused())

		transcript := session.Transcript()
		require.Len(t, transcript, 1)
		require.Equal(t, ChatRoleBot, transcript[0].Role)
		require.Equal(t, "Namaste!", transcript[0].Text)
	})

	t.Run("blank welcome leaves the transcript empty", func(t *testing.T) {
		session := NewChatSession("s-2", "  ")
		require.Empty(t, session.Transcript())
	})
}

func TestChatSessionStateTransitions(t *testing.T) {
	session := NewChatSession("s-3", "")

	session.Open()
	require.Equal(t, SessionOpen, session.State())
	require.True(t, session.InputFocused())

	session.Close()
	require.Equal(t, SessionClosed, session.State())
	require.False(t, session.InputFocused())

	session.Toggle()
	require.Equal(t,SessionOpen, session.State())
	require.True(t, session.InputFocused())

	session.Toggle()
	require.Equal(t, SessionClosed, session.State())
	require.False(t, session.InputFocused())
}

func TestChatSessionAppendSanitizes(t *testing.T) {
	session := NewChatSession("s-4", "")
	session.Append(ChatRoleUser, "<b>hi</b>\nthere")

	transcript := session.Transcript()
	require.Len(t, transcript, 1)
	require.Equal(t, "<b>hi</b>\nthere", transcript[0].Text)
	require.Equal(t, "&lt;b&gt;hi&lt;/b&gt;<br>there", transcript[0].HTML)
}

func TestChatSessionTranscriptIsACopy(t *testing.T) {
	session := NewChatSession("s-5", "")
	session.Append(ChatRoleUser, "first")

	transcript := session.Transcript()
	transcript[0].Text = "mutated"

	require.Equal(t, "first", session.Transcript()[0].Text)
}

func TestChatSessionTyping(t *testing.T) {
	session := NewChatSession("s-6", "")
	require.False(t, session.Typing())

	session.ShowTyping()
	require.True(t, session.Typing())

	require.True(t, session.HideTyping())
	require.False(t, session.Typing())
	require.False(t, session.HideTyping())
}

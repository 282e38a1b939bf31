package domain

import (
	"strings"
	"sync"

	"github.com/norbulab/sikkim-trails-services/api/internal/sanitize"
)

// ChatRole identifies the author of a transcript entry.
type ChatRole string

const (
	ChatRoleUser ChatRole = "user"
	ChatRoleBot  ChatRole = "bot"
)

// ChatMessage is one transcript entry. Text keeps the raw input; HTML is
// the sanitized rendering that may be inserted into markup as-is.
type ChatMessage struct {
	Role ChatRole
	Text string
	HTML string
}

// SessionState is the chat widget's modal state.
type SessionState string

const (
	SessionClosed SessionState = "closed"
	SessionOpen   SessionState = "open"
)

// ChatSession models the widget: an open/closed modal, a transcript, and
// a typing indicator shown while a reply is in flight. Transcripts live in
// memory only and are lost with the session.
type ChatSession struct {
	ID string

	mu           sync.Mutex
	state        SessionState
	transcript   []ChatMessage
	typing       bool
	inputFocused bool
}

// NewChatSession returns a closed session whose transcript is seeded with
// the welcome message, when one is configured.
func NewChatSession(id, welcome string) *ChatSession {
	s := &ChatSession{ID: id, state: SessionClosed}
	if strings.TrimSpace(welcome) != "" {
		s.Append(ChatRoleBot, welcome)
	}
	return s
}

// State reports whether the modal is open or closed.
func (s *ChatSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Open shows the modal and focuses the input.
func (s *ChatSession) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = SessionOpen
	s.inputFocused = true
}

// Close hides the modal. Close button, minimize, a click outside the
// modal and the escape key all funnel here.
func (s *ChatSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = SessionClosed
	s.inputFocused = false
}

// Toggle flips the modal the way activating the chat icon does.
func (s *ChatSession) Toggle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == SessionOpen {
		s.state = SessionClosed
		s.inputFocused = false
		return
	}
	s.state = SessionOpen
	s.inputFocused = true
}

// InputFocused reports whether opening the modal moved focus to the input.
func (s *ChatSession) InputFocused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inputFocused
}

// Append sanitizes text and adds it to the transcript.
func (s *ChatSession) Append(role ChatRole, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = append(s.transcript, ChatMessage{
		Role: role,
		Text: text,
		HTML: sanitize.TextToHTML(text),
	})
}

// Transcript returns a copy of the visible messages.
func (s *ChatSession) Transcript() []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ChatMessage(nil), s.transcript...)
}

// ShowTyping displays the typing indicator. Showing it twice is a no-op.
func (s *ChatSession) ShowTyping() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.typing = true
}

// HideTyping removes the indicator and reports whether it was visible, so
// callers can assert it is taken down exactly once per exchange.
func (s *ChatSession) HideTyping() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	was := s.typing
	s.typing = false
	return was
}

// Typing reports whether the indicator is visible.
func (s *ChatSession) Typing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typing
}

package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/norbulab/sikkim-trails-services/api/internal/public/domain"
)

const (
	// DefaultChatTimeout bounds one relay to the configured backend.
	DefaultChatTimeout = 30 * time.Second
	// DefaultDemoDelay simulates the assistant thinking when no backend
	// is configured.
	DefaultDemoDelay = 600 * time.Millisecond
	// DefaultSessionTTL evicts sessions idle longer than a page visit
	// plausibly lasts. Transcripts are ephemeral; an abandoned session
	// has nothing worth keeping.
	DefaultSessionTTL = 30 * time.Minute
	// DefaultMaxSessions caps live sessions so unauthenticated session
	// creation cannot grow process memory without bound.
	DefaultMaxSessions = 1000

	demoReplyPrefix = "(No backend configured) Demo reply: I received: "
	apologyPrefix   = "Sorry, something went wrong. "
)

// ErrEmptyMessage rejects a message whose trimmed text is empty. The
// widget drops these silently; HTTP callers get a validation error.
var ErrEmptyMessage = errors.New("chat: empty message")

// ErrSessionNotFound reports an unknown or expired session id.
var ErrSessionNotFound = errors.New("chat: session not found")

// ChatService owns chat sessions and the exchange with the assistant
// backend. When no backend is configured every send gets the canned demo
// reply after a short delay.
type ChatService struct {
	backend     ChatBackend
	timeout     time.Duration
	demoDelay   time.Duration
	welcome     string
	sessionTTL  time.Duration
	maxSessions int
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

// sessionEntry pairs a session with its last-touched time for idle
// eviction.
type sessionEntry struct {
	session    *domain.ChatSession
	lastActive time.Time
}

// ChatConfig carries the optional knobs for NewChatService. A nil Backend
// selects the demo fallback.
type ChatConfig struct {
	Backend     ChatBackend
	Timeout     time.Duration
	DemoDelay   time.Duration
	Welcome     string
	SessionTTL  time.Duration
	MaxSessions int
}

// NewChatService creates the chat service.
func NewChatService(cfg ChatConfig) *ChatService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultChatTimeout
	}
	if cfg.DemoDelay <= 0 {
		cfg.DemoDelay = DefaultDemoDelay
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = DefaultMaxSessions
	}
	return &ChatService{
		backend:     cfg.Backend,
		timeout:     cfg.Timeout,
		demoDelay:   cfg.DemoDelay,
		welcome:     cfg.Welcome,
		sessionTTL:  cfg.SessionTTL,
		maxSessions: cfg.MaxSessions,
		now:         time.Now,
		sessions:    make(map[string]*sessionEntry),
	}
}

// NewSession creates a session seeded with the welcome message. Expired
// sessions are swept first, and when the cap is still reached the
// longest-idle session makes room.
func (s *ChatService) NewSession() *domain.ChatSession {
	session := domain.NewChatSession(uuid.NewString(), s.welcome)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()
	s.sessions[session.ID] = &sessionEntry{session: session, lastActive: s.now()}
	return session
}

// Session looks up a session by id and refreshes its idle clock. A
// session idle past the TTL is treated as gone.
func (s *ChatService) Session(id string) (*domain.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	now := s.now()
	if now.Sub(entry.lastActive) > s.sessionTTL {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}
	entry.lastActive = now
	return entry.session, nil
}

// DeleteSession removes a session. Widget teardown maps here; the
// transcript is discarded with it.
func (s *ChatService) DeleteSession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// evictLocked sweeps idle-expired sessions and, while the cap is still
// reached, drops the longest-idle one. Callers hold mu.
func (s *ChatService) evictLocked() {
	now := s.now()
	for id, entry := range s.sessions {
		if now.Sub(entry.lastActive) > s.sessionTTL {
			delete(s.sessions, id)
		}
	}
	for len(s.sessions) >= s.maxSessions {
		oldestID := ""
		var oldest time.Time
		for id, entry := range s.sessions {
			if oldestID == "" || entry.lastActive.Before(oldest) {
				oldestID = id
				oldest = entry.lastActive
			}
		}
		delete(s.sessions, oldestID)
	}
}

// Send runs one exchange: append the user message, show the typing
// indicator, obtain a reply (demo or backend), and append it. Every
// failure path hides the indicator and appends exactly one apologetic bot
// message carrying the error detail; the typed error is still returned so
// callers can tell a timeout from an upstream rejection.
func (s *ChatService) Send(ctx context.Context, session *domain.ChatSession, text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrEmptyMessage
	}

	session.Append(domain.ChatRoleUser, trimmed)
	session.ShowTyping()

	if s.backend == nil {
		return s.demoReply(ctx, session, trimmed)
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.backend.Send(sendCtx, trimmed)
	if err != nil {
		err = s.classify(err)
		session.HideTyping()
		session.Append(domain.ChatRoleBot, apologyPrefix+err.Error())
		return "", err
	}

	session.HideTyping()
	session.Append(domain.ChatRoleBot, reply)
	return reply, nil
}

func (s *ChatService) demoReply(ctx context.Context, session *domain.ChatSession, text string) (string, error) {
	timer := time.NewTimer(s.demoDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		session.HideTyping()
		err := s.classify(ctx.Err())
		session.Append(domain.ChatRoleBot, apologyPrefix+err.Error())
		return "", err
	case <-timer.C:
	}

	reply := demoReplyPrefix + text
	session.HideTyping()
	session.Append(domain.ChatRoleBot, reply)
	return reply, nil
}

// classify maps raw transport errors onto the service error taxonomy.
func (s *ChatService) classify(err error) error {
	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.TimeoutError{Provider: "chat", Err: err}
	}
	return &domain.UpstreamError{Provider: "chat", Err: err}
}

package repository

import (
	"context"
	"time"

	"healthassist/backend/internal/conversation"
	"healthassist/backend/internal/model"
)

// Session is the state of one signed-in browser tab. Sessions live in memory
// only and vanish on restart.
type Session struct {
	ID            string
	Authenticated bool
	Profile       model.Profile
	Chat          *conversation.Conversation // nil until a chat is started
	ChatStartedAt time.Time
	CreatedAt     time.Time
}

// Clone returns a deep copy that callers may read without holding locks.
func (s *Session) Clone() *Session {
	out := *s
	if s.Chat != nil {
		out.Chat = s.Chat.Clone()
	}
	return &out
}

// Repository defines the interface for session storage.
type Repository interface {
	CreateSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	// UpdateSession runs fn on the stored session while holding its lock.
	// An error from fn is returned unchanged and partial changes are kept.
	UpdateSession(ctx context.Context, sessionID string, fn func(*Session) error) error
	DeleteSession(ctx context.Context, sessionID string) error
	Count(ctx context.Context) (int, error)
}

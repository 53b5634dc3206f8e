package repository

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewMemoryRepository returns a Repository backed by a map.
func NewMemoryRepository() Repository {
	return &memoryRepository{sessions: make(map[string]*Session)}
}

func (r *memoryRepository) CreateSession(ctx context.Context, session *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[session.ID]; ok {
		return ErrExists
	}
	r.sessions[session.ID] = session.Clone()
	return nil
}

func (r *memoryRepository) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return s.Clone(), nil
}

func (r *memoryRepository) UpdateSession(ctx context.Context, sessionID string, fn func(*Session) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	return fn(s)
}

func (r *memoryRepository) DeleteSession(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[sessionID]; !ok {
		return ErrNotFound
	}
	delete(r.sessions, sessionID)
	return nil
}

func (r *memoryRepository) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions), nil
}

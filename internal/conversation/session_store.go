package conversation

import (
	"context"
	"sync"
	"time"
)

// SessionStore persists conversation sessions keyed by user phone number.
// Implementations expire sessions after the configured idle timeout; a
// request outlives its session.
type SessionStore interface {
	Get(ctx context.Context, userID string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, userID string) error
}

type memorySessionEntry struct {
	session   Session
	expiresAt time.Time
}

// InMemorySessionStore keeps sessions in a map with lazy TTL expiry.
type InMemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memorySessionEntry
	ttl      time.Duration
	now      func() time.Time
}

// NewInMemorySessionStore creates a store with the given idle timeout.
func NewInMemorySessionStore(ttl time.Duration) *InMemorySessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &InMemorySessionStore{
		sessions: make(map[string]memorySessionEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

var _ SessionStore = (*InMemorySessionStore)(nil)

// Get returns the live session for the user, or nil when absent or expired.
func (s *InMemorySessionStore) Get(ctx context.Context, userID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[userID]
	if !ok {
		return nil, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.sessions, userID)
		return nil, nil
	}
	cp := entry.session
	return &cp, nil
}

// Save stores the session and refreshes its expiry.
func (s *InMemorySessionStore) Save(ctx context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session.UpdatedAt = s.now().UTC()
	s.sessions[session.UserID] = memorySessionEntry{
		session:   *session,
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

// Delete removes the user's session.
func (s *InMemorySessionStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

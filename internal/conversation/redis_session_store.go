package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSessionStore persists sessions in Redis with a TTL that doubles as the
// session idle timeout: every save refreshes the expiry.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisSessionStore creates a Redis-backed session store.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	if client == nil {
		panic("conversation: redis client required")
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisSessionStore{client: client, ttl: ttl, prefix: "djobea:session:"}
}

var _ SessionStore = (*RedisSessionStore)(nil)

func (s *RedisSessionStore) key(userID string) string {
	return s.prefix + userID
}

// Get loads the session, returning nil when expired or never saved.
func (s *RedisSessionStore) Get(ctx context.Context, userID string) (*Session, error) {
	raw, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("conversation: session read failed: %w", err)
	}
	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		// A corrupt record behaves like an expired session.
		_ = s.client.Del(ctx, s.key(userID)).Err()
		return nil, nil
	}
	return &session, nil
}

// Save writes the session and resets the TTL.
func (s *RedisSessionStore) Save(ctx context.Context, session *Session) error {
	session.UpdatedAt = time.Now().UTC()
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("conversation: session encode failed: %w", err)
	}
	if err := s.client.Set(ctx, s.key(session.UserID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("conversation: session write failed: %w", err)
	}
	return nil
}

// Delete drops the session immediately.
func (s *RedisSessionStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("conversation: session delete failed: %w", err)
	}
	return nil
}

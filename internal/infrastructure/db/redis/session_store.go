package redis

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"

	"github.com/crmdesk/portal/internal/core/domain"
)

// SessionStore keeps sessions as JSON documents that expire with the
// session. Keys are derived from a digest of the session id so the raw id,
// which authenticates the browser, never appears in Redis.
// Key format: session:<hex(blake2b-256(id))>
type SessionStore struct {
	client redis.Cmdable
	now    func() time.Time
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client redis.Cmdable) *SessionStore {
	return &SessionStore{client: client, now: time.Now}
}

// Save writes s with a TTL matching its remaining lifetime.
func (s *SessionStore) Save(ctx context.Context, sess *domain.Session) error {
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("save session: already expired")
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := s.client.Set(ctx, SessionKey(sess.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Find loads the session for id or returns domain.ErrSessionNotFound.
func (s *SessionStore) Find(ctx context.Context, id string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, SessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("find session: decode: %w", err)
	}
	if sess.Expired(s.now()) {
		return nil, domain.ErrSessionNotFound
	}
	return &sess, nil
}

// Delete removes the session for id. Deleting a missing session is not an
// error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, SessionKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// SessionKey returns the Redis key for a session id.
func SessionKey(id string) string {
	sum := blake2b.Sum256([]byte(id))
	return "session:" + hex.EncodeToString(sum[:])
}

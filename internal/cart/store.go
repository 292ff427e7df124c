package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	pkgredis "github.com/shopora/storefront-backend/pkg/redis"
)

// Store holds session carts. Implementations provide no cross-request
// locking; two concurrent writers to the same session race and the last
// write wins.
type Store interface {
	Get(ctx context.Context, merchantID uuid.UUID, sessionID string) (*Session, error)
	Put(ctx context.Context, merchantID uuid.UUID, sessionID string, session *Session) error
	Delete(ctx context.Context, merchantID uuid.UUID, sessionID string) error
}

// RedisStore keeps carts as JSON blobs in Redis with a sliding TTL.
type RedisStore struct {
	client *pkgredis.Client
	ttl    time.Duration
}

// NewRedisStore builds a Redis-backed cart store.
func NewRedisStore(client *pkgredis.Client, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("cart: redis client is required")
	}
	if ttl <= 0 {
		return nil, errors.New("cart: session ttl must be positive")
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) Get(ctx context.Context, merchantID uuid.UUID, sessionID string) (*Session, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(merchantID.String(), sessionID))
	if err != nil {
		if errors.Is(err, pkgredis.ErrNotFound) {
			return &Session{}, nil
		}
		return nil, fmt.Errorf("loading cart session: %w", err)
	}
	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("decoding cart session: %w", err)
	}
	return &session, nil
}

func (s *RedisStore) Put(ctx context.Context, merchantID uuid.UUID, sessionID string, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding cart session: %w", err)
	}
	key := s.client.CartKey(merchantID.String(), sessionID)
	if err := s.client.Set(ctx, key, string(payload), s.ttl); err != nil {
		return fmt.Errorf("storing cart session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, merchantID uuid.UUID, sessionID string) error {
	if err := s.client.Del(ctx, s.client.CartKey(merchantID.String(), sessionID)); err != nil {
		return fmt.Errorf("deleting cart session: %w", err)
	}
	return nil
}

// MemoryStore is an in-process Store used by tests and local development.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore builds an empty in-memory cart store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (s *MemoryStore) key(merchantID uuid.UUID, sessionID string) string {
	return merchantID.String() + ":" + sessionID
}

func (s *MemoryStore) Get(_ context.Context, merchantID uuid.UUID, sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.sessions[s.key(merchantID, sessionID)]
	if !ok {
		return &Session{}, nil
	}
	clone := Session{Lines: append([]Line(nil), stored.Lines...)}
	return &clone, nil
}

func (s *MemoryStore) Put(_ context.Context, merchantID uuid.UUID, sessionID string, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := Session{Lines: append([]Line(nil), session.Lines...)}
	s.sessions[s.key(merchantID, sessionID)] = &clone
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, merchantID uuid.UUID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, s.key(merchantID, sessionID))
	return nil
}

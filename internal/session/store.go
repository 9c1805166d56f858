package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/brightpaws/frontdesk/pkg/logging"
)

const keyPrefix = "frontdesk:session:"

// Store keeps staff access tokens in Redis, keyed by an opaque session id
// that is the only value handed to the browser.
type Store struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

// NewStore creates a session store. Sessions expire after ttl.
func NewStore(rdb *redis.Client, ttl time.Duration, logger *logging.Logger) *Store {
	if rdb == nil {
		panic("session: redis client required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{rdb: rdb, ttl: ttl, logger: logger}
}

// Create stores the access token and returns a fresh session id.
func (s *Store) Create(ctx context.Context, accessToken string) (string, error) {
	sessionID := uuid.NewString()
	if err := s.rdb.Set(ctx, keyPrefix+sessionID, accessToken, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("session: store token: %w", err)
	}
	s.logger.Info("session created", "session_id", sessionID)
	return sessionID, nil
}

// Lookup resolves a session id to its access token.
func (s *Store) Lookup(ctx context.Context, sessionID string) (string, error) {
	token, err := s.rdb.Get(ctx, keyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("session: lookup: %w", err)
	}
	return token, nil
}

// Delete removes a session. Deleting an absent session is not an error.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("session: delete: %w", err)
	}
	s.logger.Info("session cleared", "session_id", sessionID)
	return nil
}

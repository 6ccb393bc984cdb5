package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-user-profile/internal/logger"
	"github.com/sbilibin2017/gw-user-profile/internal/models"
)

const defaultSessionKeyPrefix = "session:"

// SessionCacheRepository keeps recently resolved sessions in Redis.
// Entries expire together with the session they describe.
type SessionCacheRepository struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewSessionCacheRepository creates a cache using the default key prefix.
func NewSessionCacheRepository(client *redis.Client) *SessionCacheRepository {
	return &SessionCacheRepository{
		client: client,
		prefix: defaultSessionKeyPrefix,
		now:    time.Now,
	}
}

func (r *SessionCacheRepository) key(sessionID string) string {
	return r.prefix + sessionID
}

// Get returns the cached session, or nil on a cache miss.
func (r *SessionCacheRepository) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	val, err := r.client.Get(ctx, r.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		logger.FromContext(ctx).Debugw("session cache miss")
		return nil, nil
	}
	if err != nil {
		logger.FromContext(ctx).Errorw("session cache get failed", "error", err)
		return nil, err
	}

	var s models.Session
	if err := json.Unmarshal(val, &s); err != nil {
		logger.FromContext(ctx).Errorw("session cache entry is corrupt", "error", err)
		return nil, err
	}
	return &s, nil
}

// Set caches s until it expires. Already expired sessions are not cached.
func (r *SessionCacheRepository) Set(ctx context.Context, s models.Session) error {
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, r.key(s.SessionID), data, ttl).Err()
	logger.FromContext(ctx).Debugw("session cache set", "user_id", s.UserID, "ttl", ttl, "error", err)
	return err
}

// Delete evicts the session from the cache.
func (r *SessionCacheRepository) Delete(ctx context.Context, sessionID string) error {
	err := r.client.Del(ctx, r.key(sessionID)).Err()
	logger.FromContext(ctx).Debugw("session cache delete", "error", err)
	return err
}

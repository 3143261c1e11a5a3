package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"kycdesk/internal/operator/models"
	"kycdesk/internal/sentinel"
	dErrors "kycdesk/pkg/domain-errors"
)

const sessionKeyPrefix = "operator_session:"

// RedisStore persists sessions in redis with a TTL matching the session
// expiry, so logout across restarts and multiple console instances works.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store over an existing redis client. The caller
// owns the client's lifecycle.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// NewRedisClient connects to redis and verifies the connection.
func NewRedisClient(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to connect to redis")
	}
	return client, nil
}

func (s *RedisStore) Save(ctx context.Context, session models.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to marshal session")
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return sentinel.ErrExpired
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+session.ID, raw, ttl).Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to save session")
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (models.Session, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Session{}, sentinel.ErrNotFound
		}
		return models.Session{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load session")
	}

	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return models.Session{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to unmarshal session")
	}
	return session, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to delete session")
	}
	return nil
}

package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rlewis2892/creepy-octo-meow/internal/application/ports"
	"github.com/rlewis2892/creepy-octo-meow/internal/domain"
)

const keyPrefix = "session:"

// RedisStore implements ports.SessionStore on Redis. Expiry is enforced by
// the key TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, profileID domain.ProfileID) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, keyPrefix+id, profileID.String(), s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (domain.ProfileID, bool, error) {
	val, err := s.client.Get(ctx, keyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ProfileID{}, false, nil
		}
		return domain.ProfileID{}, false, err
	}
	parsed, err := uuid.Parse(val)
	if err != nil {
		return domain.ProfileID{}, false, err
	}
	return domain.NewProfileID(parsed), true, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, keyPrefix+sessionID).Err()
}

var _ ports.SessionStore = (*RedisStore)(nil)

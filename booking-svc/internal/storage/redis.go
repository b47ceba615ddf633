package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"cafe-assistant/booking-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisSessionStore keeps one JSON-encoded session per user. A zero TTL
// means sessions never expire.
type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{Client: client, TTL: ttl}
}

func (s *RedisSessionStore) SessionKey(userID int64) string {
	return "session:" + strconv.FormatInt(userID, 10)
}

func (s *RedisSessionStore) Load(ctx context.Context, userID int64) (domain.Session, error) {
	data, err := s.Client.Get(ctx, s.SessionKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Idle{}, nil
	}
	if err != nil {
		return nil, err
	}
	session, err := domain.UnmarshalSession(data)
	if err != nil {
		return nil, fmt.Errorf("decode session of user %d: %w", userID, err)
	}
	return session, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, userID int64, session domain.Session) error {
	data, err := domain.MarshalSession(session)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, s.SessionKey(userID), data, s.TTL).Err()
}

func (s *RedisSessionStore) Clear(ctx context.Context, userID int64) error {
	return s.Client.Del(ctx, s.SessionKey(userID)).Err()
}

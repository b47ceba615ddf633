package storage

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultDeliveryTTL = 24 * time.Hour

type RedisDeliveryLog struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisDeliveryLog(client *redis.Client, ttl time.Duration) *RedisDeliveryLog {
	if ttl <= 0 {
		ttl = defaultDeliveryTTL
	}
	return &RedisDeliveryLog{Client: client, TTL: ttl}
}

func (l *RedisDeliveryLog) DeliveryKey(notificationID string, chatID int64) string {
	return "notification:" + notificationID + ":" + strconv.FormatInt(chatID, 10)
}

func (l *RedisDeliveryLog) AlreadySent(ctx context.Context, notificationID string, chatID int64) (bool, error) {
	n, err := l.Client.Exists(ctx, l.DeliveryKey(notificationID, chatID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (l *RedisDeliveryLog) MarkSent(ctx context.Context, notificationID string, chatID int64) error {
	return l.Client.Set(ctx, l.DeliveryKey(notificationID, chatID), "1", l.TTL).Err()
}

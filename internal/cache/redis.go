package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RedisClient struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisClient(addr, password string, db int, log *zap.Logger) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("Redis connected successfully", zap.String("addr", addr))

	return &RedisClient{
		client: rdb,
		log:    log,
	}, nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

// Rate limiting (cooldown повторной отправки кодов)
func (r *RedisClient) SetRateLimit(ctx context.Context, key string, ttl time.Duration) error {
	return r.client.Set(ctx, fmt.Sprintf("ratelimit:%s", key), "1", ttl).Err()
}

func (r *RedisClient) CheckRateLimit(ctx context.Context, key string) (bool, error) {
	exists, err := r.client.Exists(ctx, fmt.Sprintf("ratelimit:%s", key)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// Дедупликация повторных доставок вебхуков: SET NX по event id.
// Это только срез нагрузки перед БД — сама идемпотентность держится на
// условных UPDATE и уникальном индексе, не на кэше.
func (r *RedisClient) MarkWebhookEvent(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, fmt.Sprintf("webhook:event:%s", eventID), "1", ttl).Result()
}

// ClearWebhookEvent снимает отметку, если событие не удалось обработать —
// повторная доставка должна дойти до БД, а не срезаться как дубликат.
func (r *RedisClient) ClearWebhookEvent(ctx context.Context, eventID string) error {
	return r.client.Del(ctx, fmt.Sprintf("webhook:event:%s", eventID)).Err()
}

package service

import (
	"context"
	"time"

	"storefront/internal/producer"

	"github.com/google/uuid"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type TokenProvider interface {
	SignAccess(sub uuid.UUID, email, role string, ttl time.Duration) (token string, exp time.Time, err error)
}

type EmailProducer interface {
	SendEmail(ctx context.Context, key string, msg producer.EmailMessage) error
}

type CacheClient interface {
	SetRateLimit(ctx context.Context, key string, ttl time.Duration) error
	CheckRateLimit(ctx context.Context, key string) (bool, error)
	MarkWebhookEvent(ctx context.Context, eventID string, ttl time.Duration) (bool, error)
	ClearWebhookEvent(ctx context.Context, eventID string) error
}

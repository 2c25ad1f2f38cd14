package repositories

import (
	"context"
	"time"

	"github.com/hoteldesk/chat-admin/src/models"
)

// CustomerRepository defines the interface for customer directory access
type CustomerRepository interface {
	FindAll(ctx context.Context) ([]models.Customer, error)
	// FindOne returns (nil, nil) when no record matches the key
	FindOne(ctx context.Context, key string) (*models.Customer, error)
	Count(ctx context.Context) (int, error)
	CountActiveSince(ctx context.Context, cutoff time.Time) (int, error)
	// SetAIEnabled returns the number of matched records
	SetAIEnabled(ctx context.Context, key string, enabled bool) (int64, error)
}

// MessageRepository defines the interface for conversation log access.
// The log is append-only; FindByCustomer returns events in ascending
// timestamp order, stable by insertion for equal timestamps.
type MessageRepository interface {
	Append(ctx context.Context, event *models.MessageEvent) error
	FindByCustomer(ctx context.Context, customerKey string) ([]models.MessageEvent, error)
}

// SessionRepository defines the interface for the session denylist
type SessionRepository interface {
	// Revoke records a token id as invalid until expiresAt; idempotent
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

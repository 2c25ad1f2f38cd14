package mock

import (
	"context"
	"time"

	"github.com/hoteldesk/chat-admin/src/repositories"
)

// SessionRepository is a mock implementation of repositories.SessionRepository
type SessionRepository struct {
	// Function stubs that can be overridden in tests
	RevokeFunc        func(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevokedFunc     func(ctx context.Context, tokenID string) (bool, error)
	DeleteExpiredFunc func(ctx context.Context, now time.Time) (int64, error)

	// Call tracking
	Calls map[string][]interface{}
}

// NewSessionRepository creates a new mock session repository
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		Calls: make(map[string][]interface{}),
	}
}

func (m *SessionRepository) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	m.Calls["Revoke"] = append(m.Calls["Revoke"], tokenID)
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, tokenID, expiresAt)
	}
	return nil
}

func (m *SessionRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	m.Calls["IsRevoked"] = append(m.Calls["IsRevoked"], tokenID)
	if m.IsRevokedFunc != nil {
		return m.IsRevokedFunc(ctx, tokenID)
	}
	return false, nil
}

func (m *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	m.Calls["DeleteExpired"] = append(m.Calls["DeleteExpired"], now)
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx, now)
	}
	return 0, nil
}

// Ensure SessionRepository implements the interface
var _ repositories.SessionRepository = (*SessionRepository)(nil)

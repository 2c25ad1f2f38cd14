package mock

import (
	"context"

	"github.com/hoteldesk/chat-admin/src/models"
	"github.com/hoteldesk/chat-admin/src/repositories"
)

// MessageRepository is a mock implementation of repositories.MessageRepository
type MessageRepository struct {
	// Function stubs that can be overridden in tests
	AppendFunc         func(ctx context.Context, event *models.MessageEvent) error
	FindByCustomerFunc func(ctx context.Context, customerKey string) ([]models.MessageEvent, error)

	// Call tracking
	Calls map[string][]interface{}
}

// NewMessageRepository creates a new mock message repository
func NewMessageRepository() *MessageRepository {
	return &MessageRepository{
		Calls: make(map[string][]interface{}),
	}
}

func (m *MessageRepository) Append(ctx context.Context, event *models.MessageEvent) error {
	m.Calls["Append"] = append(m.Calls["Append"], event)
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, event)
	}
	return nil
}

func (m *MessageRepository) FindByCustomer(ctx context.Context, customerKey string) ([]models.MessageEvent, error) {
	m.Calls["FindByCustomer"] = append(m.Calls["FindByCustomer"], customerKey)
	if m.FindByCustomerFunc != nil {
		return m.FindByCustomerFunc(ctx, customerKey)
	}
	return nil, nil
}

// Ensure MessageRepository implements the interface
var _ repositories.MessageRepository = (*MessageRepository)(nil)

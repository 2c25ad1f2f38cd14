package mock

import (
	"context"
	"time"

	"github.com/hoteldesk/chat-admin/src/models"
	"github.com/hoteldesk/chat-admin/src/repositories"
)

// CustomerRepository is a mock implementation of repositories.CustomerRepository
type CustomerRepository struct {
	// Function stubs that can be overridden in tests
	FindAllFunc          func(ctx context.Context) ([]models.Customer, error)
	FindOneFunc          func(ctx context.Context, key string) (*models.Customer, error)
	CountFunc            func(ctx context.Context) (int, error)
	CountActiveSinceFunc func(ctx context.Context, cutoff time.Time) (int, error)
	SetAIEnabledFunc     func(ctx context.Context, key string, enabled bool) (int64, error)

	// Call tracking
	Calls map[string][]interface{}
}

// NewCustomerRepository creates a new mock customer repository
func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{
		Calls: make(map[string][]interface{}),
	}
}

func (m *CustomerRepository) FindAll(ctx context.Context) ([]models.Customer, error) {
	m.Calls["FindAll"] = append(m.Calls["FindAll"], nil)
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *CustomerRepository) FindOne(ctx context.Context, key string) (*models.Customer, error) {
	m.Calls["FindOne"] = append(m.Calls["FindOne"], key)
	if m.FindOneFunc != nil {
		return m.FindOneFunc(ctx, key)
	}
	return nil, nil
}

func (m *CustomerRepository) Count(ctx context.Context) (int, error) {
	m.Calls["Count"] = append(m.Calls["Count"], nil)
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *CustomerRepository) CountActiveSince(ctx context.Context, cutoff time.Time) (int, error) {
	m.Calls["CountActiveSince"] = append(m.Calls["CountActiveSince"], cutoff)
	if m.CountActiveSinceFunc != nil {
		return m.CountActiveSinceFunc(ctx, cutoff)
	}
	return 0, nil
}

func (m *CustomerRepository) SetAIEnabled(ctx context.Context, key string, enabled bool) (int64, error) {
	m.Calls["SetAIEnabled"] = append(m.Calls["SetAIEnabled"], []interface{}{key, enabled})
	if m.SetAIEnabledFunc != nil {
		return m.SetAIEnabledFunc(ctx, key, enabled)
	}
	return 0, nil
}

// Ensure CustomerRepository implements the interface
var _ repositories.CustomerRepository = (*CustomerRepository)(nil)

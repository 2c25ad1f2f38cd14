package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hoteldesk/chat-admin/src/models"
	"github.com/hoteldesk/chat-admin/src/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CustomerService implements the admin-side writes: toggling the
// automated-reply flag and injecting manual messages into a conversation.
type CustomerService struct {
	pool      *pgxpool.Pool
	customers repositories.CustomerRepository
	messages  repositories.MessageRepository

	// now is swappable in tests
	now func() time.Time
}

// NewCustomerService creates a new customer service
func NewCustomerService(pool *pgxpool.Pool) *CustomerService {
	return &CustomerService{pool: pool, now: time.Now}
}

// NewCustomerServiceWithRepos creates a new customer service with repositories (for testing)
func NewCustomerServiceWithRepos(customers repositories.CustomerRepository, messages repositories.MessageRepository) *CustomerService {
	return &CustomerService{customers: customers, messages: messages, now: time.Now}
}

// ToggleAI flips the customer's automated-reply flag and returns the new
// state. An unset flag counts as enabled, so the first toggle turns it off.
//
// Through the generic repository contract this is a read-modify-write;
// two concurrent toggles on the same key can lose an update. The Postgres
// path sidesteps that with a single conditional update.
func (cs *CustomerService) ToggleAI(ctx context.Context, key string) (bool, error) {
	// Use repository if available (for testing)
	if cs.customers != nil {
		customer, err := cs.customers.FindOne(ctx, key)
		if err != nil {
			return false, fmt.Errorf("%w: find customer: %v", ErrStoreUnavailable, err)
		}
		if customer == nil {
			return false, ErrCustomerNotFound
		}

		newState := !customer.AIOn()
		if _, err := cs.customers.SetAIEnabled(ctx, key, newState); err != nil {
			return false, fmt.Errorf("%w: update ai flag: %v", ErrStoreUnavailable, err)
		}
		return newState, nil
	}

	var newState bool
	err := cs.pool.QueryRow(ctx,
		`UPDATE customers
		 SET ai_enabled = NOT COALESCE(ai_enabled, TRUE)
		 WHERE key = $1
		 RETURNING ai_enabled`,
		key,
	).Scan(&newState)
	if err == pgx.ErrNoRows {
		return false, ErrCustomerNotFound
	}
	if err != nil {
		return false, fmt.Errorf("%w: toggle ai flag: %v", ErrStoreUnavailable, err)
	}
	return newState, nil
}

// SetAI unconditionally sets the automated-reply flag. Zero matched
// records fails with ErrCustomerNotFound.
func (cs *CustomerService) SetAI(ctx context.Context, key string, enabled bool) error {
	var matched int64
	var err error

	// Use repository if available (for testing)
	if cs.customers != nil {
		matched, err = cs.customers.SetAIEnabled(ctx, key, enabled)
	} else {
		var tag pgconn.CommandTag
		tag, err = cs.pool.Exec(ctx,
			`UPDATE customers SET ai_enabled = $2 WHERE key = $1`,
			key, enabled,
		)
		if err == nil {
			matched = tag.RowsAffected()
		}
	}

	if err != nil {
		return fmt.Errorf("%w: set ai flag: %v", ErrStoreUnavailable, err)
	}
	if matched == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// InjectAdminMessage appends an admin-authored event to the customer's
// conversation log and returns it. The stored event carries the admin
// sentinel in the user_message slot and the text in bot_response, matching
// the legacy layout the chat pipeline writes. A failed append leaves no
// event behind.
func (cs *CustomerService) InjectAdminMessage(ctx context.Context, key, text string) (*models.MessageEvent, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: message text is required", ErrValidation)
	}

	customer, err := cs.findCustomer(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: find customer: %v", ErrStoreUnavailable, err)
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	event := &models.MessageEvent{
		CustomerKey: key,
		Timestamp:   cs.now(),
		UserMessage: models.AdminSentinel,
		BotResponse: text,
	}

	// Use repository if available (for testing)
	if cs.messages != nil {
		if err := cs.messages.Append(ctx, event); err != nil {
			return nil, fmt.Errorf("%w: append message: %v", ErrStoreUnavailable, err)
		}
		return event, nil
	}

	_, err = cs.pool.Exec(ctx,
		`INSERT INTO messages (customer_key, timestamp, user_message, bot_response)
		 VALUES ($1, $2, $3, $4)`,
		event.CustomerKey, event.Timestamp, event.UserMessage, event.BotResponse,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: append message: %v", ErrStoreUnavailable, err)
	}
	return event, nil
}

func (cs *CustomerService) findCustomer(ctx context.Context, key string) (*models.Customer, error) {
	// Use repository if available (for testing)
	if cs.customers != nil {
		return cs.customers.FindOne(ctx, key)
	}
	return findCustomerByKey(ctx, cs.pool, key)
}

// findCustomerByKey loads a single directory record, returning (nil, nil)
// when no record matches.
func findCustomerByKey(ctx context.Context, pool *pgxpool.Pool, key string) (*models.Customer, error) {
	var c models.Customer
	err := pool.QueryRow(ctx,
		`SELECT key, last_active, ai_enabled FROM customers WHERE key = $1`,
		key,
	).Scan(&c.Key, &c.LastActive, &c.AIEnabled)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

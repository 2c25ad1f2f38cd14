package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hoteldesk/chat-admin/src/models"
	"github.com/hoteldesk/chat-admin/src/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ActivityWindow is the trailing span used to classify a customer as
// active. The boundary is inclusive: last_active exactly at now-window
// still counts.
const ActivityWindow = 10 * 24 * time.Hour

// EngagementService computes dashboard aggregates by joining the customer
// directory with the conversation log. All operations are pure reads.
type EngagementService struct {
	pool      *pgxpool.Pool
	customers repositories.CustomerRepository
	messages  repositories.MessageRepository
}

// NewEngagementService creates a new engagement service
func NewEngagementService(pool *pgxpool.Pool) *EngagementService {
	return &EngagementService{pool: pool}
}

// NewEngagementServiceWithRepos creates a new engagement service with repositories (for testing)
func NewEngagementServiceWithRepos(customers repositories.CustomerRepository, messages repositories.MessageRepository) *EngagementService {
	return &EngagementService{customers: customers, messages: messages}
}

// TotalCount returns the cardinality of the customer directory
func (es *EngagementService) TotalCount(ctx context.Context) (int, error) {
	// Use repository if available (for testing)
	if es.customers != nil {
		count, err := es.customers.Count(ctx)
		if err != nil {
			return 0, fmt.Errorf("%w: count customers: %v", ErrStoreUnavailable, err)
		}
		return count, nil
	}

	var count int
	err := es.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: count customers: %v", ErrStoreUnavailable, err)
	}
	return count, nil
}

// ActiveCount returns the number of customers active within the activity
// window ending at now. Customers that were never active are excluded.
func (es *EngagementService) ActiveCount(ctx context.Context, now time.Time) (int, error) {
	cutoff := now.Add(-ActivityWindow)

	// Use repository if available (for testing)
	if es.customers != nil {
		count, err := es.customers.CountActiveSince(ctx, cutoff)
		if err != nil {
			return 0, fmt.Errorf("%w: count active customers: %v", ErrStoreUnavailable, err)
		}
		return count, nil
	}

	var count int
	err := es.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM customers WHERE last_active >= $1`,
		cutoff,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: count active customers: %v", ErrStoreUnavailable, err)
	}
	return count, nil
}

// Summarize returns one summary per customer, ordered by last_active
// descending with never-active customers last (ties broken by key).
//
// Policy: last_message is the most recent text the customer themselves
// sent. Admin-injected events and bot-only replies are skipped; customers
// with no user-originated messages get a fixed placeholder.
func (es *EngagementService) Summarize(ctx context.Context) ([]models.CustomerSummary, error) {
	customers, err := es.findAllCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list customers: %v", ErrStoreUnavailable, err)
	}

	summaries := make([]models.CustomerSummary, 0, len(customers))
	for _, c := range customers {
		last, err := es.lastUserMessage(ctx, c.Key)
		if err != nil {
			return nil, fmt.Errorf("%w: last message for %s: %v", ErrStoreUnavailable, c.Key, err)
		}
		if last == "" {
			last = models.NoMessagesPlaceholder
		}
		summaries = append(summaries, models.CustomerSummary{Customer: c, LastMessage: last})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i].LastActive, summaries[j].LastActive
		switch {
		case a == nil && b == nil:
			return summaries[i].Key < summaries[j].Key
		case a == nil:
			return false
		case b == nil:
			return true
		case a.Equal(*b):
			return summaries[i].Key < summaries[j].Key
		default:
			return a.After(*b)
		}
	})

	return summaries, nil
}

func (es *EngagementService) findAllCustomers(ctx context.Context) ([]models.Customer, error) {
	// Use repository if available (for testing)
	if es.customers != nil {
		return es.customers.FindAll(ctx)
	}

	rows, err := es.pool.Query(ctx, `SELECT key, last_active, ai_enabled FROM customers`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.Key, &c.LastActive, &c.AIEnabled); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// lastUserMessage returns the newest user-originated message text for the
// customer, or "" when none exists.
func (es *EngagementService) lastUserMessage(ctx context.Context, customerKey string) (string, error) {
	// Use repository if available (for testing)
	if es.messages != nil {
		events, err := es.messages.FindByCustomer(ctx, customerKey)
		if err != nil {
			return "", err
		}
		for i := len(events) - 1; i >= 0; i-- {
			if events[i].UserMessage != "" && !events[i].IsAdminAuthored() {
				return events[i].UserMessage, nil
			}
		}
		return "", nil
	}

	var text string
	err := es.pool.QueryRow(ctx,
		`SELECT user_message FROM messages
		 WHERE customer_key = $1 AND user_message <> '' AND user_message <> $2
		 ORDER BY timestamp DESC, id DESC
		 LIMIT 1`,
		customerKey, models.AdminSentinel,
	).Scan(&text)
	if err == pgx.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return text, nil
}

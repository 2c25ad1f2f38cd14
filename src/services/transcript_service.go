package services

import (
	"context"
	"fmt"

	"github.com/hoteldesk/chat-admin/src/models"
	"github.com/hoteldesk/chat-admin/src/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TranscriptService reconstructs display-ordered, role-tagged transcripts
// from a customer's flat message log.
type TranscriptService struct {
	pool      *pgxpool.Pool
	customers repositories.CustomerRepository
	messages  repositories.MessageRepository
}

// NewTranscriptService creates a new transcript service
func NewTranscriptService(pool *pgxpool.Pool) *TranscriptService {
	return &TranscriptService{pool: pool}
}

// NewTranscriptServiceWithRepos creates a new transcript service with repositories (for testing)
func NewTranscriptServiceWithRepos(customers repositories.CustomerRepository, messages repositories.MessageRepository) *TranscriptService {
	return &TranscriptService{customers: customers, messages: messages}
}

// Transcript returns the customer's conversation as display lines in
// ascending timestamp order, ties kept in insertion order. The result is
// a pure function of the stored log, so repeated calls over an unchanged
// log yield identical sequences. Unknown keys fail with ErrCustomerNotFound.
func (ts *TranscriptService) Transcript(ctx context.Context, customerKey string) ([]models.DisplayLine, error) {
	customer, err := ts.findCustomer(ctx, customerKey)
	if err != nil {
		return nil, fmt.Errorf("%w: find customer: %v", ErrStoreUnavailable, err)
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	events, err := ts.findEvents(ctx, customerKey)
	if err != nil {
		return nil, fmt.Errorf("%w: load conversation: %v", ErrStoreUnavailable, err)
	}

	lines := make([]models.DisplayLine, 0, len(events))
	for i := range events {
		lines = append(lines, events[i].Expand()...)
	}
	return lines, nil
}

func (ts *TranscriptService) findCustomer(ctx context.Context, key string) (*models.Customer, error) {
	// Use repository if available (for testing)
	if ts.customers != nil {
		return ts.customers.FindOne(ctx, key)
	}
	return findCustomerByKey(ctx, ts.pool, key)
}

func (ts *TranscriptService) findEvents(ctx context.Context, customerKey string) ([]models.MessageEvent, error) {
	// Use repository if available (for testing)
	if ts.messages != nil {
		return ts.messages.FindByCustomer(ctx, customerKey)
	}

	rows, err := ts.pool.Query(ctx,
		`SELECT customer_key, timestamp, user_message, bot_response
		 FROM messages
		 WHERE customer_key = $1
		 ORDER BY timestamp ASC, id ASC`,
		customerKey,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.MessageEvent
	for rows.Next() {
		var e models.MessageEvent
		if err := rows.Scan(&e.CustomerKey, &e.Timestamp, &e.UserMessage, &e.BotResponse); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

package models

import "time"

// Customer represents a support-chat customer record
type Customer struct {
	Key        string     `json:"key"`
	LastActive *time.Time `json:"last_active"`
	AIEnabled  *bool      `json:"ai_enabled"`
}

// AIOn reports whether automated replies are enabled for the customer.
// An unset flag defaults to enabled.
func (c Customer) AIOn() bool {
	if c.AIEnabled == nil {
		return true
	}
	return *c.AIEnabled
}

// ActiveSince reports whether the customer was active at or after cutoff.
// Customers that were never active are never considered active.
func (c Customer) ActiveSince(cutoff time.Time) bool {
	if c.LastActive == nil {
		return false
	}
	return !c.LastActive.Before(cutoff)
}

// CustomerSummary is a customer record joined with the text of the last
// message the customer themselves sent
type CustomerSummary struct {
	Customer
	LastMessage string `json:"last_message"`
}

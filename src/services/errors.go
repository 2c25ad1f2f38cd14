package services

import "errors"

// Sentinel errors for explicit error handling
// These errors allow callers to distinguish between different failure modes
// using errors.Is() instead of string matching

var (
	// ErrUnauthenticated indicates a missing, invalid, expired, or revoked session token
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrCustomerNotFound indicates the customer key has no directory record
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrStoreUnavailable indicates the backing store could not be reached or queried
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrValidation indicates malformed or missing request input
	ErrValidation = errors.New("invalid input")
)

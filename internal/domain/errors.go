package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Auth errors
	ErrMsgBadSignature       = "bad signature"
	ErrMsgExpired            = "identity assertion expired"
	ErrMsgMalformedAssertion = "malformed identity assertion"

	// Game errors
	ErrMsgCooldownActive    = "cooldown active"
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgBalanceOverflow   = "balance overflow"
	ErrMsgUnknownItem       = "unknown item kind"
	ErrMsgInvalidInput      = "invalid input"

	// Payment errors
	ErrMsgInvalidPayload  = "invalid payment payload"
	ErrMsgUnknownProduct  = "unknown product"
	ErrMsgPaymentMismatch = "payment does not match product"
	ErrMsgPaymentNotFound = "payment not found"
	ErrMsgPaymentSettled  = "payment already settled"

	// Storage errors
	ErrMsgStorage           = "storage error"
	ErrMsgConflictRetryable = "concurrent update conflict"
	ErrMsgUserNotFound      = "user not found"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// AuthError
	ErrBadSignature       = errors.New(ErrMsgBadSignature)
	ErrExpired            = errors.New(ErrMsgExpired)
	ErrMalformedAssertion = errors.New(ErrMsgMalformedAssertion)

	// GameError
	ErrCooldownActive    = errors.New(ErrMsgCooldownActive)
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrBalanceOverflow   = errors.New(ErrMsgBalanceOverflow)
	ErrUnknownItem       = errors.New(ErrMsgUnknownItem)
	ErrInvalidInput      = errors.New(ErrMsgInvalidInput)

	// PaymentError
	ErrInvalidPayload  = errors.New(ErrMsgInvalidPayload)
	ErrUnknownProduct  = errors.New(ErrMsgUnknownProduct)
	ErrPaymentMismatch = errors.New(ErrMsgPaymentMismatch)
	ErrPaymentNotFound = errors.New(ErrMsgPaymentNotFound)
	ErrPaymentSettled  = errors.New(ErrMsgPaymentSettled)

	// StorageError
	ErrStorage = errors.New(ErrMsgStorage)

	// ErrConflictRetryable is a StorageError: errors.Is(ErrConflictRetryable, ErrStorage) holds.
	ErrConflictRetryable = fmt.Errorf("%w: %s", ErrStorage, ErrMsgConflictRetryable)

	// Lookup errors
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)
)

// IsAuthError reports whether err rejects an identity assertion.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrBadSignature) ||
		errors.Is(err, ErrExpired) ||
		errors.Is(err, ErrMalformedAssertion)
}

// IsGameError reports whether err is an expected, user-facing game outcome.
func IsGameError(err error) bool {
	return errors.Is(err, ErrCooldownActive) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrBalanceOverflow) ||
		errors.Is(err, ErrUnknownItem) ||
		errors.Is(err, ErrInvalidInput)
}

// IsPaymentError reports whether err needs operator follow-up on a payment.
func IsPaymentError(err error) bool {
	return errors.Is(err, ErrInvalidPayload) ||
		errors.Is(err, ErrUnknownProduct) ||
		errors.Is(err, ErrPaymentMismatch)
}

// IsStorageError reports whether err is a transient storage failure.
// It is the only class that may be retried.
func IsStorageError(err error) bool {
	return errors.Is(err, ErrStorage)
}

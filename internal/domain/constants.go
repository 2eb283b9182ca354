package domain

import "math"

// Ledger limits
const (
	// MaxBalance is the largest value any balance or inventory count may hold
	MaxBalance int64 = math.MaxInt32

	// DefaultStartingCoins is granted on first verified contact
	DefaultStartingCoins int64 = 100
)

// Game action names used by the client request and metrics
const (
	ActionHarvest  = "harvest"
	ActionPurchase = "purchase"
)

// Event type names shared across packages
const (
	EventTypePaymentApplied   = "payment.applied"
	EventTypePaymentRejected  = "payment.rejected"
	EventTypePaymentUnsettled = "payment.unsettled"
)

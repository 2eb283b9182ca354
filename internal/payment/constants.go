package payment

import "time"

// Payload grammar
const (
	PrefixAddCoins  = "add_coins_"
	PrefixAddAnimal = "add_animal_"

	// maxCoinDigits is the length of MaxBalance in decimal
	maxCoinDigits = 10
)

// Defaults for Config
const (
	DefaultCacheSize      = 4096
	DefaultCacheTTL       = time.Hour
	DefaultUnsettledGrace = 10 * time.Minute
	UnsettledScanLimit    = 100
)

// Settle details
const (
	DetailCoinsFmt  = "coins:%d"
	DetailAnimalFmt = "item:%s"
)

// Metric outcome labels beyond the Outcome names
const (
	OutcomeLabelFailed = "failed"
)

// Error messages
const (
	ErrMsgNotRecorded    = "payment not recorded"
	ErrMsgMissingID      = "payment id is required"
	ErrMsgMissingUser    = "user id is required"
	ErrMsgEmptyPayload   = "empty payload"
	ErrMsgBadAmount      = "coin amount must be 1 to 2147483647 ASCII digits"
	ErrMsgBadAnimal      = "not a purchasable animal"
	ErrMsgUnknownGrammar = "payload matches no known form"
	ErrMsgWrongCurrency  = "currency must be XTR"
	ErrMsgWrongAmount    = "amount does not match product price"
	ErrMsgCatalogPayload = "catalog product has an unparsable payload"
)

// Log messages
const (
	LogMsgReconciled      = "Payment reconciled"
	LogMsgDuplicate       = "Duplicate payment ignored"
	LogMsgInvalidPayload  = "Payment payload rejected; payment recorded as invalid"
	LogMsgCreditFailed    = "Payment credit failed; payment left unsettled for operator review"
	LogMsgSettleFailed    = "Failed to settle payment"
	LogMsgPublishFailed   = "Failed to publish payment event"
	LogMsgUnsettled       = "Payment unsettled past grace period"
	LogMsgCheckoutRefused = "Pre-checkout refused"
)

// Retry operation names
const (
	opRecord = "payment.record"
	opSettle = "payment.settle"
	opCredit = "payment.credit"
	opList   = "payment.list_unsettled"
)

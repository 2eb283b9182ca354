package handler

import "time"

// Error codes returned in ErrorResponse.Code. The Mini-App switches on these.
const (
	CodeBadSignature       = "bad_signature"
	CodeExpired            = "expired"
	CodeMalformedAssertion = "malformed_assertion"
	CodeCooldownActive     = "cooldown_active"
	CodeInsufficientFunds  = "insufficient_funds"
	CodeBalanceOverflow    = "balance_overflow"
	CodeUnknownItem        = "unknown_item"
	CodeUnknownProduct     = "unknown_product"
	CodeInvalidRequest     = "invalid_request"
	CodeTryAgain           = "try_again"
	CodeInvoiceFailed      = "invoice_failed"
	CodeInternal           = "internal"
)

// Client-facing error messages. They never carry internal error details.
const (
	ErrMsgInvalidRequest     = "Invalid request body"
	ErrMsgBadSignature       = "Identity could not be verified"
	ErrMsgExpired            = "Session expired, reopen the app"
	ErrMsgMalformedAssertion = "Missing or malformed identity"
	ErrMsgCooldownActive     = "That crop is still growing"
	ErrMsgInsufficientFunds  = "Not enough coins"
	ErrMsgBalanceOverflow    = "Balance limit reached"
	ErrMsgUnknownItem        = "Unknown item"
	ErrMsgUnknownProduct     = "Unknown product"
	ErrMsgTryAgain           = "The farm is busy, please try again"
	ErrMsgInvoiceFailed      = "Could not create invoice"
	ErrMsgInternal           = "Something went wrong"
	ErrMsgInvalidLimit       = "Invalid limit parameter"
	ErrMsgMissingCrop        = "crop is required for harvest"
	ErrMsgMissingAnimal      = "animal is required for purchase"
)

// Actions accepted by the state endpoint
const (
	ActionHarvest  = "harvest"
	ActionPurchase = "purchase"
)

// HeaderInitData may carry the identity assertion instead of the body
const HeaderInitData = "X-Telegram-Init-Data"

// Health
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
	HealthMsgStoreDown      = "store unreachable"
	ReadinessTimeout        = 2 * time.Second
)

// Admin listing bounds
const (
	DefaultUnsettledLimit = 100
	MaxUnsettledLimit     = 1000
)

// Log messages
const (
	LogMsgDecodeFailed     = "Failed to decode request"
	LogMsgValidationFailed = "Request validation failed"
	LogMsgAuthRejected     = "Identity assertion rejected"
	LogMsgActionRejected   = "Action rejected"
	LogMsgRequestFailed    = "Request failed"
	LogMsgInvoiceCreated   = "Invoice link created"
	LogMsgReadinessFailed  = "Readiness check failed"
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response buffer"
)

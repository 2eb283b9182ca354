package identity

import "time"

// Telegram initData field names
const (
	FieldHash     = "hash"
	FieldAuthDate = "auth_date"
	FieldUser     = "user"
)

// secretDerivationKey is the fixed HMAC key Telegram uses to derive the
// per-bot secret from the bot token.
const secretDerivationKey = "WebAppData"

// DefaultMaxAge is the default freshness window for an assertion
const DefaultMaxAge = 24 * time.Hour

// MaxClockSkew tolerates auth_date values slightly ahead of the server clock
const MaxClockSkew = time.Minute

// Error detail messages
const (
	ErrMsgParseQuery     = "cannot parse initData"
	ErrMsgMissingHash    = "missing hash"
	ErrMsgHashEncoding   = "hash is not hex"
	ErrMsgMissingAuth    = "missing or invalid auth_date"
	ErrMsgFutureAuthDate = "auth_date is in the future"
	ErrMsgMissingUser    = "missing user"
	ErrMsgDecodeUser     = "cannot decode user"
	ErrMsgAgeFormat      = "assertion is %s old, window is %s"
)

package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Security alert message templates
const (
	SecurityAlertFailedAuth = "⚠️ SECURITY ALERT: Multiple failed authentication attempts"
	SecurityAlertHighRate   = "⚠️ SECURITY ALERT: Blocking high request rate"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgServerStopping   = "Server shutting down"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
)

// HTTP header names
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderAuthorization  = "Authorization"
	HeaderInitData       = "X-Telegram-Init-Data"
	HeaderWebhookSecret  = "X-Telegram-Bot-Api-Secret-Token"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderReferrerPolicy = "Referrer-Policy"
)

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueSameOrigin           = "SAMEORIGIN"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
)

// RedactedHeaders are never written to logs
var RedactedHeaders = []string{
	HeaderAPIKey,
	HeaderAuthorization,
	HeaderInitData,
	HeaderWebhookSecret,
}

// QuietPaths are served without request logging
var QuietPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
}

// Header redaction marker
const RedactedValue = "[REDACTED]"

// Limits
const (
	MaxRequestBytes       = 1 << 20
	ReadHeaderTimeout     = 5 * time.Second
	RateWindow            = 5 * time.Minute
	RateLimitPerWindow    = 1000
	FailedAuthAlertCount  = 5
	RateAlertLogEvery     = 100
	CORSMaxAgeSeconds     = 300
	ShutdownGraceDuration = 10 * time.Second
)

// Routes
const (
	RouteWebhook = "/telegram/webhook"
)

package telegram

import "time"

// HeaderSecretToken carries the webhook secret set with setWebhook
const HeaderSecretToken = "X-Telegram-Bot-Api-Secret-Token"

// Bot API methods this package calls through MakeRequest
const (
	methodSendMessage       = "sendMessage"
	methodCreateInvoiceLink = "createInvoiceLink"
	methodSetWebhook        = "setWebhook"
)

// Bot API parameter names
const (
	paramChatID         = "chat_id"
	paramText           = "text"
	paramReplyMarkup    = "reply_markup"
	paramTitle          = "title"
	paramDescription    = "description"
	paramPayload        = "payload"
	paramCurrency       = "currency"
	paramPrices         = "prices"
	paramURL            = "url"
	paramSecretToken    = "secret_token"
	paramAllowedUpdates = "allowed_updates"
	paramDropPending    = "drop_pending_updates"
)

// AllowedUpdates is every update type the webhook handles
var AllowedUpdates = []string{"message", "pre_checkout_query"}

// Bot commands
const (
	CommandStart   = "start"
	CommandBalance = "balance"
)

// Limits
const (
	MaxUpdateBytes       = 1 << 20
	DefaultClientTimeout = 10 * time.Second
)

// Reply texts. Numbers are formatted for the sender's language.
const (
	MsgWelcomeFmt        = "Welcome to the farm, %s! You have %d coins."
	MsgOpenFarmButton    = "🌾 Open farm"
	MsgBalanceFmt        = "You have %d coins."
	MsgBalanceItemFmt    = "\n%s: %d"
	MsgPaymentCoinsFmt   = "Payment received: +%d coins. Balance: %d."
	MsgPaymentAnimalFmt  = "Payment received: a new %s joined your farm."
	MsgPaymentRejected   = "We received your payment but could not deliver it. Support has been notified."
	MsgCheckoutRefused   = "This item is no longer available."
	MsgTryAgain          = "The farm is busy right now. Please try again in a moment."
	MsgDefaultPlayerName = "farmer"
)

// Error messages
const (
	ErrMsgCreateBot      = "failed to create bot client"
	ErrMsgSend           = "failed to send message"
	ErrMsgInvoiceLink    = "failed to create invoice link"
	ErrMsgDecodeResult   = "failed to decode bot api result"
	ErrMsgSetWebhook     = "failed to set webhook"
	ErrMsgAnswerCheckout = "failed to answer pre-checkout query"
)

// Log messages
const (
	LogMsgSecretMismatch   = "Webhook secret mismatch"
	LogMsgDecodeUpdate     = "Failed to decode update"
	LogMsgPaymentReceived  = "Successful payment received"
	LogMsgReconcileFailed  = "Payment reconcile failed"
	LogMsgCheckoutAnswered = "Pre-checkout query answered"
	LogMsgCheckoutFailed   = "Failed to answer pre-checkout query"
	LogMsgCommandFailed    = "Bot command failed"
	LogMsgNotificationDrop = "Notification dropped, worker queue full"
	LogMsgUpdateIgnored    = "Update ignored"
)

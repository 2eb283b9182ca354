package domain

import "time"

// PaymentStatus tracks a recorded payment through settlement
type PaymentStatus string

const (
	// PaymentRecorded means the sentinel exists but no effect has been settled yet
	PaymentRecorded PaymentStatus = "recorded"
	// PaymentApplied means the credit reached the ledger
	PaymentApplied PaymentStatus = "applied"
	// PaymentInvalid means the payload could not be mapped to an effect
	PaymentInvalid PaymentStatus = "invalid"
)

// CurrencyStars is the Telegram Stars currency code
const CurrencyStars = "XTR"

// PurchaseEvent is one Telegram-confirmed payment
type PurchaseEvent struct {
	PaymentID   string `json:"payment_id"`
	UserID      int64  `json:"user_id"`
	Payload     string `json:"payload"`
	Currency    string `json:"currency,omitempty"`
	TotalAmount int64  `json:"total_amount,omitempty"`
}

// PaymentRecord is the durable idempotency entry for a PurchaseEvent
type PaymentRecord struct {
	PurchaseEvent
	Status     PaymentStatus `json:"status"`
	Detail     string        `json:"detail,omitempty"`
	RecordedAt time.Time     `json:"recorded_at"`
	SettledAt  *time.Time    `json:"settled_at,omitempty"`
}

// EffectKind distinguishes the two kinds of purchase effect
type EffectKind string

const (
	EffectCoinGrant EffectKind = "coin_grant"
	EffectItemGrant EffectKind = "item_grant"
)

// Effect is an already-validated purchase effect ready to credit
type Effect struct {
	Kind  EffectKind `json:"kind"`
	Coins int64      `json:"coins,omitempty"`
	Item  ItemKind   `json:"item,omitempty"`
}

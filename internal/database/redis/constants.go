package redis

import "time"

// Key layout
const (
	keyPrefixUser    = "farm:user:"
	keyPrefixPayment = "farm:payment:"
	keyUnsettled     = "farm:payments:unsettled"
)

// Defaults
const (
	// DefaultMaxAttempts bounds the WATCH/MULTI loop before reporting a retryable conflict
	DefaultMaxAttempts = 5
	DefaultDialTimeout = 5 * time.Second
)

// Payment hash fields
const (
	fieldPaymentID   = "payment_id"
	fieldUserID      = "user_id"
	fieldPayload     = "payload"
	fieldCurrency    = "currency"
	fieldTotalAmount = "total_amount"
	fieldStatus      = "status"
	fieldDetail      = "detail"
	fieldRecordedAt  = "recorded_at"
	fieldSettledAt   = "settled_at"
)

// Settle script replies
const (
	settleOK      = "ok"
	settleMissing = "missing"
)

// Operation names used in wrapped errors
const (
	opConnect       = "connect"
	opCreateUser    = "create user"
	opGetUser       = "get user"
	opDecodeUser    = "decode user"
	opEncodeUser    = "encode user"
	opApplyAtomic   = "apply atomic"
	opRecordPayment = "record payment"
	opSettlePayment = "settle payment"
	opListUnsettled = "list unsettled payments"
	opPing          = "ping"
)

// recordPaymentScript writes the sentinel and indexes it as unsettled in one step.
// KEYS[1] payment hash, KEYS[2] unsettled zset
// ARGV: payment_id, user_id, payload, currency, total_amount, recorded_at (RFC3339Nano), recorded_at (unix ms)
const recordPaymentScript = `
if redis.call('HSETNX', KEYS[1], 'status', 'recorded') == 0 then
  return 0
end
redis.call('HSET', KEYS[1],
  'payment_id', ARGV[1], 'user_id', ARGV[2], 'payload', ARGV[3],
  'currency', ARGV[4], 'total_amount', ARGV[5], 'detail', '', 'recorded_at', ARGV[6])
redis.call('ZADD', KEYS[2], ARGV[7], ARGV[1])
return 1
`

// settlePaymentScript moves a recorded payment to a terminal status.
// Returns "ok", "missing", or the current status when already settled.
// KEYS[1] payment hash, KEYS[2] unsettled zset
// ARGV: payment_id, status, detail, settled_at
const settlePaymentScript = `
local status = redis.call('HGET', KEYS[1], 'status')
if not status then
  return 'missing'
end
if status ~= 'recorded' then
  return status
end
redis.call('HSET', KEYS[1], 'status', ARGV[2], 'detail', ARGV[3], 'settled_at', ARGV[4])
redis.call('ZREM', KEYS[2], ARGV[1])
return 'ok'
`

package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeCheckViolation fires when coins leave the 0..MaxBalance range
	PgErrorCodeCheckViolation       = "23514"
	PgErrorCodeSerializationFailure = "40001"
	PgErrorCodeDeadlockDetected     = "40P01"
)

// Inventory Constants
const (
	// EmptyJSONObject is the stored form of an empty inventory or cooldown map
	EmptyJSONObject = `{}`
)

// Queries
const (
	queryInsertUser = `
		INSERT INTO users (user_id, display_name, coins, inventory, last_harvest, created_at, updated_at)
		VALUES ($1, $2, $3, '{}'::jsonb, '{}'::jsonb, $4, $4)
		ON CONFLICT (user_id) DO NOTHING`

	querySelectUser = `
		SELECT user_id, display_name, coins, inventory, last_harvest, created_at, updated_at
		FROM users WHERE user_id = $1`

	querySelectUserForUpdate = querySelectUser + ` FOR UPDATE`

	queryUpdateUser = `
		UPDATE users
		SET display_name = $2, coins = $3, inventory = $4, last_harvest = $5, updated_at = $6
		WHERE user_id = $1`

	queryInsertPayment = `
		INSERT INTO payments (payment_id, user_id, payload, currency, total_amount, status, recorded_at)
		VALUES ($1, $2, $3, $4, $5, 'recorded', $6)
		ON CONFLICT (payment_id) DO NOTHING`

	querySettlePayment = `
		UPDATE payments SET status = $2, detail = $3, settled_at = $4
		WHERE payment_id = $1 AND status = 'recorded'`

	queryPaymentStatus = `SELECT status FROM payments WHERE payment_id = $1`

	queryListUnsettled = `
		SELECT payment_id, user_id, payload, currency, total_amount, status, detail, recorded_at, settled_at
		FROM payments
		WHERE status = 'recorded' AND recorded_at < $1
		ORDER BY recorded_at
		LIMIT $2`
)

// Operation names used in wrapped errors
const (
	opBeginTx       = "begin transaction"
	opCommitTx      = "commit transaction"
	opInsertUser    = "insert user"
	opSelectUser    = "select user"
	opUpdateUser    = "update user"
	opEncodeUser    = "encode user state"
	opDecodeUser    = "decode user state"
	opInsertPayment = "insert payment"
	opSettlePayment = "settle payment"
	opListUnsettled = "list unsettled payments"
	opPing          = "ping"
)

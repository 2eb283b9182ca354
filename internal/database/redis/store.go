// Package redis implements the ledger store on Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/repository"
)

// Store implements repository.LedgerStore on a single Redis instance.
// Users are JSON documents; payments are hashes indexed by a sorted set of unsettled ids.
type Store struct {
	client        *redis.Client
	startingCoins int64
	maxAttempts   int
	now           func() time.Time

	recordScript *redis.Script
	settleScript *redis.Script
}

var _ repository.LedgerStore = (*Store)(nil)

// NewClient creates a Redis client and verifies connectivity
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: DefaultDialTimeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, wrapErr(opConnect, err)
	}
	return client, nil
}

// NewStore creates a new Store
func NewStore(client *redis.Client, startingCoins int64) *Store {
	return &Store{
		client:        client,
		startingCoins: startingCoins,
		maxAttempts:   DefaultMaxAttempts,
		now:           func() time.Time { return time.Now().UTC() },
		recordScript:  redis.NewScript(recordPaymentScript),
		settleScript:  redis.NewScript(settlePaymentScript),
	}
}

func userKey(userID int64) string {
	return keyPrefixUser + strconv.FormatInt(userID, 10)
}

func paymentKey(paymentID string) string {
	return keyPrefixPayment + paymentID
}

func wrapErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
}

// GetOrCreate writes the default record with SETNX; losers of a first-contact race read the winner's record.
func (s *Store) GetOrCreate(ctx context.Context, userID int64, displayName string) (domain.User, error) {
	key := userKey(userID)
	fresh := domain.NewUser(userID, displayName, s.startingCoins, s.now())
	data, err := json.Marshal(fresh)
	if err != nil {
		return domain.User{}, wrapErr(opEncodeUser, err)
	}

	created, err := s.client.SetNX(ctx, key, data, 0).Result()
	if err != nil {
		return domain.User{}, wrapErr(opCreateUser, err)
	}
	if created {
		return fresh, nil
	}

	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		return domain.User{}, wrapErr(opGetUser, err)
	}
	return decodeUser(raw)
}

// passthrough carries errors out of a WATCH callback untouched
type passthrough struct{ err error }

func (p *passthrough) Error() string { return p.err.Error() }

// ApplyAtomic runs an optimistic WATCH/MULTI transaction, retrying internally on
// write conflicts up to maxAttempts before reporting ErrConflictRetryable.
func (s *Store) ApplyAtomic(ctx context.Context, userID int64, mutate repository.Mutation) (domain.User, error) {
	key := userKey(userID)

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		var result domain.User
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			raw, err := tx.Get(ctx, key).Bytes()
			if errors.Is(err, redis.Nil) {
				return &passthrough{fmt.Errorf("%w: %d", domain.ErrUserNotFound, userID)}
			}
			if err != nil {
				return err
			}

			current, err := decodeUser(raw)
			if err != nil {
				return &passthrough{err}
			}

			next, err := mutate(current.Clone())
			if err != nil {
				return &passthrough{err}
			}
			next.UserID = current.UserID
			next.CreatedAt = current.CreatedAt
			next.UpdatedAt = s.now()

			data, err := json.Marshal(next)
			if err != nil {
				return &passthrough{wrapErr(opEncodeUser, err)}
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, data, 0)
				return nil
			})
			if err == nil {
				result = next
			}
			return err
		}, key)

		var pt *passthrough
		switch {
		case err == nil:
			return result, nil
		case errors.As(err, &pt):
			return domain.User{}, pt.err
		case errors.Is(err, redis.TxFailedErr):
			continue
		default:
			return domain.User{}, wrapErr(opApplyAtomic, err)
		}
	}

	return domain.User{}, fmt.Errorf("%s: %w", opApplyAtomic, domain.ErrConflictRetryable)
}

// RecordPaymentOnce writes the payment sentinel with HSETNX inside a Lua script
func (s *Store) RecordPaymentOnce(ctx context.Context, event domain.PurchaseEvent) (repository.RecordResult, error) {
	now := s.now()
	n, err := s.recordScript.Run(ctx, s.client,
		[]string{paymentKey(event.PaymentID), keyUnsettled},
		event.PaymentID,
		event.UserID,
		event.Payload,
		event.Currency,
		event.TotalAmount,
		now.Format(time.RFC3339Nano),
		now.UnixMilli(),
	).Int()
	if err != nil {
		return 0, wrapErr(opRecordPayment, err)
	}
	if n == 0 {
		return repository.AlreadyRecorded, nil
	}
	return repository.Accepted, nil
}

// SettlePayment moves a recorded payment to status. Settling again with the same status is a no-op.
func (s *Store) SettlePayment(ctx context.Context, paymentID string, status domain.PaymentStatus, detail string) error {
	reply, err := s.settleScript.Run(ctx, s.client,
		[]string{paymentKey(paymentID), keyUnsettled},
		paymentID, string(status), detail, s.now().Format(time.RFC3339Nano),
	).Text()
	if err != nil {
		return wrapErr(opSettlePayment, err)
	}

	switch reply {
	case settleOK:
		return nil
	case settleMissing:
		return fmt.Errorf("%w: %s", domain.ErrPaymentNotFound, paymentID)
	case string(status):
		return nil
	default:
		return fmt.Errorf("%w: %s is %s", domain.ErrPaymentSettled, paymentID, reply)
	}
}

// ListUnsettledPayments reads the unsettled index up to olderThan and loads each hash in one pipeline
func (s *Store) ListUnsettledPayments(ctx context.Context, olderThan time.Time, limit int) ([]domain.PaymentRecord, error) {
	ids, err := s.client.ZRangeByScore(ctx, keyUnsettled, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   "(" + strconv.FormatInt(olderThan.UnixMilli(), 10),
		Count: int64(limit),
	}).Result()
	if err != nil {
		return nil, wrapErr(opListUnsettled, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, paymentKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, wrapErr(opListUnsettled, err)
	}

	records := make([]domain.PaymentRecord, 0, len(ids))
	for _, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		rec, err := decodePayment(fields)
		if err != nil {
			return nil, wrapErr(opListUnsettled, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Ping checks Redis connectivity
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return wrapErr(opPing, err)
	}
	return nil
}

// Close closes the client
func (s *Store) Close() {
	_ = s.client.Close()
}

func decodeUser(raw []byte) (domain.User, error) {
	var u domain.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return domain.User{}, wrapErr(opDecodeUser, err)
	}
	if u.Inventory == nil {
		u.Inventory = make(map[domain.ItemKind]int64)
	}
	if u.LastHarvestAt == nil {
		u.LastHarvestAt = make(map[domain.CropKind]time.Time)
	}
	return u, nil
}

func decodePayment(fields map[string]string) (domain.PaymentRecord, error) {
	rec := domain.PaymentRecord{
		PurchaseEvent: domain.PurchaseEvent{
			PaymentID: fields[fieldPaymentID],
			Payload:   fields[fieldPayload],
			Currency:  fields[fieldCurrency],
		},
		Status: domain.PaymentStatus(fields[fieldStatus]),
		Detail: fields[fieldDetail],
	}

	var err error
	if rec.UserID, err = strconv.ParseInt(fields[fieldUserID], 10, 64); err != nil {
		return rec, err
	}
	if v := fields[fieldTotalAmount]; v != "" {
		if rec.TotalAmount, err = strconv.ParseInt(v, 10, 64); err != nil {
			return rec, err
		}
	}
	if rec.RecordedAt, err = time.Parse(time.RFC3339Nano, fields[fieldRecordedAt]); err != nil {
		return rec, err
	}
	if v := fields[fieldSettledAt]; v != "" {
		settled, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return rec, err
		}
		rec.SettledAt = &settled
	}
	return rec, nil
}

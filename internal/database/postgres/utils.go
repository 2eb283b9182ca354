package postgres

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

// wrapErr classifies a driver error. Serialization failures and deadlocks are
// retryable conflicts; everything else that is not a domain outcome is a StorageError.
func wrapErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgErrorCodeSerializationFailure, PgErrorCodeDeadlockDetected:
			return fmt.Errorf("%s: %w: %w", op, domain.ErrConflictRetryable, err)
		case PgErrorCodeCheckViolation:
			return fmt.Errorf("%s: %w", op, domain.ErrBalanceOverflow)
		}
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
}

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		u          domain.User
		invRaw     []byte
		harvestRaw []byte
	)
	if err := row.Scan(&u.UserID, &u.DisplayName, &u.Coins, &invRaw, &harvestRaw, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return domain.User{}, err
	}
	if err := decodeState(&u, invRaw, harvestRaw); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w: %w", opDecodeUser, domain.ErrStorage, err)
	}
	return u, nil
}

func decodeState(u *domain.User, invRaw, harvestRaw []byte) error {
	u.Inventory = make(map[domain.ItemKind]int64)
	u.LastHarvestAt = make(map[domain.CropKind]time.Time)
	if len(invRaw) > 0 {
		if err := json.Unmarshal(invRaw, &u.Inventory); err != nil {
			return err
		}
	}
	if len(harvestRaw) > 0 {
		if err := json.Unmarshal(harvestRaw, &u.LastHarvestAt); err != nil {
			return err
		}
	}
	return nil
}

func encodeState(u domain.User) (inventory, lastHarvest []byte, err error) {
	inventory = []byte(EmptyJSONObject)
	if len(u.Inventory) > 0 {
		if inventory, err = json.Marshal(u.Inventory); err != nil {
			return nil, nil, err
		}
	}
	lastHarvest = []byte(EmptyJSONObject)
	if len(u.LastHarvestAt) > 0 {
		if lastHarvest, err = json.Marshal(u.LastHarvestAt); err != nil {
			return nil, nil, err
		}
	}
	return inventory, lastHarvest, nil
}

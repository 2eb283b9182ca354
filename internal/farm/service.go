// Package farm implements the game rules: harvesting crops, buying animals
// and crediting Stars purchases to the ledger.
package farm

import (
	"context"
	"errors"
	"time"

	"github.com/osse101/FarmBot_Go/internal/cooldown"
	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/identity"
	"github.com/osse101/FarmBot_Go/internal/logger"
	"github.com/osse101/FarmBot_Go/internal/metrics"
	"github.com/osse101/FarmBot_Go/internal/repository"
)

// Snapshot is the player state returned to the Mini-App
type Snapshot struct {
	UserID    int64                               `json:"userId"`
	Coins     int64                               `json:"coins"`
	Inventory map[domain.ItemKind]int64           `json:"inventory"`
	Cooldowns map[domain.CropKind]cooldown.Status `json:"cooldowns"`
}

// Service defines the game operations available to the request router
type Service interface {
	State(ctx context.Context, player identity.VerifiedIdentity) (*Snapshot, error)
	Harvest(ctx context.Context, player identity.VerifiedIdentity, crop domain.CropKind) (*Snapshot, error)
	PurchaseAnimal(ctx context.Context, player identity.VerifiedIdentity, kind domain.AnimalKind) (*Snapshot, error)
	Credit(ctx context.Context, userID int64, displayName string, effect domain.Effect) (domain.User, error)
	Catalog() *Catalog
}

type service struct {
	store   repository.LedgerStore
	catalog *Catalog
	rules   Rules
	retry   repository.RetryPolicy
	now     func() time.Time
}

// NewService creates a new farm service
func NewService(store repository.LedgerStore, catalog *Catalog, devMode bool, retry repository.RetryPolicy) Service {
	return &service{
		store:   store,
		catalog: catalog,
		rules:   catalog.Rules(devMode),
		retry:   retry,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Catalog() *Catalog {
	return s.catalog
}

func (s *service) State(ctx context.Context, player identity.VerifiedIdentity) (*Snapshot, error) {
	u, err := s.getOrCreate(ctx, player.UserID, player.DisplayName)
	if err != nil {
		return nil, err
	}

	if player.DisplayName != "" && u.DisplayName != player.DisplayName {
		logger.FromContext(ctx).Debug(LogMsgDisplayName, "user_id", player.UserID)
		u, err = s.apply(ctx, opRename, player.UserID, withDisplayName(player.DisplayName, repository.Identity))
		if err != nil {
			return nil, err
		}
	}

	return s.snapshot(u), nil
}

func (s *service) Harvest(ctx context.Context, player identity.VerifiedIdentity, crop domain.CropKind) (*Snapshot, error) {
	log := logger.FromContext(ctx)

	if _, err := s.getOrCreate(ctx, player.UserID, player.DisplayName); err != nil {
		return nil, err
	}

	u, err := s.apply(ctx, opHarvest, player.UserID, withDisplayName(player.DisplayName, Harvest(crop, s.now(), s.rules)))
	if err != nil {
		s.logActionError(ctx, domain.ActionHarvest, err)
		return nil, err
	}

	yield := s.rules.Yields[crop]
	metrics.Harvests.WithLabelValues(string(crop)).Inc()
	metrics.CoinsEarned.Add(float64(yield))
	log.Info(LogMsgHarvested, "user_id", player.UserID, "crop", crop, "yield", yield, "coins", u.Coins)

	return s.snapshot(u), nil
}

func (s *service) PurchaseAnimal(ctx context.Context, player identity.VerifiedIdentity, kind domain.AnimalKind) (*Snapshot, error) {
	log := logger.FromContext(ctx)

	cost, ok := s.catalog.AnimalPrice(kind)
	if !ok {
		return nil, domain.ErrUnknownItem
	}

	if _, err := s.getOrCreate(ctx, player.UserID, player.DisplayName); err != nil {
		return nil, err
	}

	u, err := s.apply(ctx, opPurchase, player.UserID, withDisplayName(player.DisplayName, PurchaseAnimalWithCoins(kind, cost)))
	if err != nil {
		s.logActionError(ctx, domain.ActionPurchase, err)
		return nil, err
	}

	metrics.AnimalsBought.WithLabelValues(string(kind)).Inc()
	metrics.CoinsSpent.Add(float64(cost))
	log.Info(LogMsgAnimalPurchased, "user_id", player.UserID, "animal", kind, "cost", cost, "coins", u.Coins)

	return s.snapshot(u), nil
}

func (s *service) Credit(ctx context.Context, userID int64, displayName string, effect domain.Effect) (domain.User, error) {
	if _, err := s.getOrCreate(ctx, userID, displayName); err != nil {
		return domain.User{}, err
	}

	u, err := s.apply(ctx, opCredit, userID, CreditFromPurchase(effect))
	if err != nil {
		return domain.User{}, err
	}

	logger.FromContext(ctx).Info(LogMsgCredited, "user_id", userID, "effect", effect.Kind, "coins", u.Coins)
	return u, nil
}

func (s *service) getOrCreate(ctx context.Context, userID int64, displayName string) (domain.User, error) {
	return repository.WithRetry(ctx, s.retry, opGetOrCreate, func(ctx context.Context) (domain.User, error) {
		return s.store.GetOrCreate(ctx, userID, displayName)
	})
}

func (s *service) apply(ctx context.Context, op string, userID int64, m repository.Mutation) (domain.User, error) {
	return repository.WithRetry(ctx, s.retry, op, func(ctx context.Context) (domain.User, error) {
		return s.store.ApplyAtomic(ctx, userID, m)
	})
}

func (s *service) snapshot(u domain.User) *Snapshot {
	inventory := make(map[domain.ItemKind]int64)
	for _, kind := range append(domain.AllCrops(), domain.AllAnimals()...) {
		inventory[kind] = u.Count(kind)
	}
	return &Snapshot{
		UserID:    u.UserID,
		Coins:     u.Coins,
		Inventory: inventory,
		Cooldowns: s.rules.Cooldowns.View(s.now(), u.LastHarvestAt, domain.AllCrops()),
	}
}

// logActionError keeps expected game outcomes out of the error log
func (s *service) logActionError(ctx context.Context, action string, err error) {
	log := logger.FromContext(ctx)
	if domain.IsGameError(err) || errors.Is(err, domain.ErrUserNotFound) {
		log.Info(LogMsgActionRejected, "action", action, "reason", err)
		return
	}
	log.Error(LogMsgActionFailed, "action", action, "error", err)
}

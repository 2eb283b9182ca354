package farm

import (
	"fmt"
	"time"

	"github.com/osse101/FarmBot_Go/internal/cooldown"
	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/repository"
)

// Rules holds what a harvest needs to know about each crop
type Rules struct {
	Cooldowns cooldown.Config
	Yields    map[domain.CropKind]int64
}

// Harvest collects crop at now, crediting its fixed yield and starting its cooldown.
func Harvest(crop domain.CropKind, now time.Time, rules Rules) repository.Mutation {
	return func(u domain.User) (domain.User, error) {
		if !crop.IsCrop() {
			return u, fmt.Errorf("%w: %q", domain.ErrUnknownItem, crop)
		}
		yield, ok := rules.Yields[crop]
		if !ok || yield <= 0 {
			return u, fmt.Errorf("%w: %q has no yield", domain.ErrUnknownItem, crop)
		}

		if onCooldown, remaining := cooldown.Check(now, u.LastHarvestAt[crop], rules.Cooldowns.GetCooldownDuration(crop)); onCooldown {
			return u, cooldown.ErrOnCooldown{Crop: crop, Remaining: remaining}
		}

		coins, err := addBounded(u.Coins, yield)
		if err != nil {
			return u, err
		}

		u.Coins = coins
		if u.LastHarvestAt == nil {
			u.LastHarvestAt = make(map[domain.CropKind]time.Time)
		}
		u.LastHarvestAt[crop] = now
		return u, nil
	}
}

// PurchaseAnimalWithCoins debits cost and adds one animal of kind in a single step.
func PurchaseAnimalWithCoins(kind domain.AnimalKind, cost int64) repository.Mutation {
	return func(u domain.User) (domain.User, error) {
		if !kind.IsAnimal() {
			return u, fmt.Errorf("%w: %q", domain.ErrUnknownItem, kind)
		}
		if cost <= 0 {
			return u, fmt.Errorf("%w: cost %d", domain.ErrInvalidInput, cost)
		}
		if u.Coins < cost {
			return u, fmt.Errorf("%w: have %d, need %d", domain.ErrInsufficientFunds, u.Coins, cost)
		}

		count, err := addBounded(u.Count(kind), 1)
		if err != nil {
			return u, err
		}

		u.Coins -= cost
		setCount(&u, kind, count)
		return u, nil
	}
}

// CreditFromPurchase applies an already validated purchase effect.
// It never checks cost; the payment was taken by Telegram.
func CreditFromPurchase(effect domain.Effect) repository.Mutation {
	return func(u domain.User) (domain.User, error) {
		switch effect.Kind {
		case domain.EffectCoinGrant:
			if effect.Coins <= 0 {
				return u, fmt.Errorf("%w: coin grant of %d", domain.ErrInvalidInput, effect.Coins)
			}
			coins, err := addBounded(u.Coins, effect.Coins)
			if err != nil {
				return u, err
			}
			u.Coins = coins
			return u, nil

		case domain.EffectItemGrant:
			if !effect.Item.Valid() {
				return u, fmt.Errorf("%w: %q", domain.ErrUnknownItem, effect.Item)
			}
			count, err := addBounded(u.Count(effect.Item), 1)
			if err != nil {
				return u, err
			}
			setCount(&u, effect.Item, count)
			return u, nil

		default:
			return u, fmt.Errorf("%w: effect kind %q", domain.ErrInvalidInput, effect.Kind)
		}
	}
}

// withDisplayName refreshes the advisory display name alongside m.
func withDisplayName(name string, m repository.Mutation) repository.Mutation {
	return func(u domain.User) (domain.User, error) {
		u, err := m(u)
		if err != nil {
			return u, err
		}
		if name != "" {
			u.DisplayName = name
		}
		return u, nil
	}
}

func addBounded(balance, delta int64) (int64, error) {
	if delta > domain.MaxBalance-balance {
		return balance, fmt.Errorf("%w: %d + %d exceeds %d", domain.ErrBalanceOverflow, balance, delta, domain.MaxBalance)
	}
	return balance + delta, nil
}

func setCount(u *domain.User, kind domain.ItemKind, count int64) {
	if u.Inventory == nil {
		u.Inventory = make(map[domain.ItemKind]int64)
	}
	u.Inventory[kind] = count
}

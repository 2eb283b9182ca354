package farm

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FarmBot_Go/internal/cooldown"
	"github.com/osse101/FarmBot_Go/internal/domain"
)

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func testRules() Rules {
	c, err := LoadCatalog("")
	if err != nil {
		panic(err)
	}
	return c.Rules(false)
}

func TestHarvest(t *testing.T) {
	rules := testRules()

	t.Run("never harvested crop is ready", func(t *testing.T) {
		u := domain.NewUser(42, "Ada", 100, t0)

		got, err := Harvest(domain.CropCarrot, t0, rules)(u)

		require.NoError(t, err)
		assert.Equal(t, int64(110), got.Coins)
		assert.Equal(t, t0, got.LastHarvestAt[domain.CropCarrot])
	})

	t.Run("cooldown active leaves state untouched", func(t *testing.T) {
		u := domain.NewUser(42, "Ada", 110, t0)
		u.LastHarvestAt[domain.CropCarrot] = t0

		got, err := Harvest(domain.CropCarrot, t0.Add(90*time.Second), rules)(u)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCooldownActive)
		var cd cooldown.ErrOnCooldown
		require.True(t, errors.As(err, &cd))
		assert.Equal(t, 210*time.Second, cd.Remaining)
		assert.Equal(t, int64(110), got.Coins)
	})

	t.Run("ready again exactly at the cooldown boundary", func(t *testing.T) {
		u := domain.NewUser(42, "Ada", 110, t0)
		u.LastHarvestAt[domain.CropCarrot] = t0

		got, err := Harvest(domain.CropCarrot, t0.Add(5*time.Minute), rules)(u)

		require.NoError(t, err)
		assert.Equal(t, int64(120), got.Coins)
	})

	t.Run("cooldowns are per crop", func(t *testing.T) {
		u := domain.NewUser(42, "Ada", 100, t0)
		u.LastHarvestAt[domain.CropCarrot] = t0

		got, err := Harvest(domain.CropPumpkin, t0.Add(time.Second), rules)(u)

		require.NoError(t, err)
		assert.Equal(t, int64(220), got.Coins)
	})

	t.Run("unknown crop", func(t *testing.T) {
		u := domain.NewUser(42, "Ada", 100, t0)

		_, err := Harvest(domain.AnimalCow, t0, rules)(u)

		assert.ErrorIs(t, err, domain.ErrUnknownItem)
	})

	t.Run("overflow is rejected", func(t *testing.T) {
		u := domain.NewUser(42, "Ada", domain.MaxBalance-5, t0)

		got, err := Harvest(domain.CropCarrot, t0, rules)(u)

		assert.ErrorIs(t, err, domain.ErrBalanceOverflow)
		assert.Equal(t, domain.MaxBalance-5, got.Coins)
	})

	t.Run("dev mode skips cooldowns", func(t *testing.T) {
		devRules := testRules()
		devRules.Cooldowns.DevMode = true
		u := domain.NewUser(42, "Ada", 100, t0)
		u.LastHarvestAt[domain.CropPumpkin] = t0

		got, err := Harvest(domain.CropPumpkin, t0, devRules)(u)

		require.NoError(t, err)
		assert.Equal(t, int64(220), got.Coins)
	})
}

func TestPurchaseAnimalWithCoins(t *testing.T) {
	tests := []struct {
		name      string
		coins     int64
		owned     int64
		kind      domain.AnimalKind
		cost      int64
		wantErr   error
		wantCoins int64
		wantCount int64
	}{
		{"exact funds", 80, 0, domain.AnimalCow, 80, nil, 0, 1},
		{"adds to existing herd", 500, 2, domain.AnimalCow, 80, nil, 420, 3},
		{"insufficient funds", 50, 0, domain.AnimalCow, 80, domain.ErrInsufficientFunds, 50, 0},
		{"crop is not an animal", 500, 0, domain.CropWheat, 10, domain.ErrUnknownItem, 500, 0},
		{"zero cost", 500, 0, domain.AnimalPig, 0, domain.ErrInvalidInput, 500, 0},
		{"herd at limit", 500, domain.MaxBalance, domain.AnimalCow, 80, domain.ErrBalanceOverflow, 500, domain.MaxBalance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := domain.NewUser(7, "P", tt.coins, t0)
			if tt.owned > 0 {
				u.Inventory[tt.kind] = tt.owned
			}

			got, err := PurchaseAnimalWithCoins(tt.kind, tt.cost)(u)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantCoins, got.Coins)
			assert.Equal(t, tt.wantCount, got.Count(tt.kind))
		})
	}
}

func TestCreditFromPurchase(t *testing.T) {
	tests := []struct {
		name      string
		coins     int64
		effect    domain.Effect
		wantErr   error
		wantCoins int64
		wantCows  int64
	}{
		{"coin grant", 100, domain.Effect{Kind: domain.EffectCoinGrant, Coins: 200}, nil, 300, 0},
		{"coin grant up to the limit", domain.MaxBalance - 200, domain.Effect{Kind: domain.EffectCoinGrant, Coins: 200}, nil, domain.MaxBalance, 0},
		{"coin grant overflow", domain.MaxBalance - 199, domain.Effect{Kind: domain.EffectCoinGrant, Coins: 200}, domain.ErrBalanceOverflow, domain.MaxBalance - 199, 0},
		{"item grant ignores balance", 0, domain.Effect{Kind: domain.EffectItemGrant, Item: domain.AnimalCow}, nil, 0, 1},
		{"unknown item", 0, domain.Effect{Kind: domain.EffectItemGrant, Item: "dragon"}, domain.ErrUnknownItem, 0, 0},
		{"non-positive grant", 0, domain.Effect{Kind: domain.EffectCoinGrant, Coins: 0}, domain.ErrInvalidInput, 0, 0},
		{"unknown effect", 0, domain.Effect{Kind: "refund"}, domain.ErrInvalidInput, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CreditFromPurchase(tt.effect)(domain.NewUser(7, "P", tt.coins, t0))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantCoins, got.Coins)
			assert.Equal(t, tt.wantCows, got.Count(domain.AnimalCow))
		})
	}
}

func TestMutationsDoNotTouchNilMaps(t *testing.T) {
	u := domain.User{UserID: 1, Coins: 100}

	got, err := Harvest(domain.CropCarrot, t0, testRules())(u)
	require.NoError(t, err)
	assert.Equal(t, t0, got.LastHarvestAt[domain.CropCarrot])

	got, err = CreditFromPurchase(domain.Effect{Kind: domain.EffectItemGrant, Item: domain.AnimalPig})(domain.User{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Count(domain.AnimalPig))
}

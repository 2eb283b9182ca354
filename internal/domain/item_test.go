package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseItemKind(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ItemKind
		wantErr bool
	}{
		{"crop", "carrot", CropCarrot, false},
		{"animal", "cow", AnimalCow, false},
		{"unknown", "dragon", "", true},
		{"case sensitive", "Cow", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseItemKind(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownItem)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestItemKindSets(t *testing.T) {
	for _, c := range AllCrops() {
		assert.True(t, c.IsCrop(), c)
		assert.False(t, c.IsAnimal(), c)
	}
	for _, a := range AllAnimals() {
		assert.True(t, a.IsAnimal(), a)
		assert.False(t, a.IsCrop(), a)
	}
	assert.Equal(t, []CropKind{CropCarrot, CropPotato, CropPumpkin, CropWheat}, AllCrops())
}

func TestUserClone(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	u := NewUser(42, "Alice", DefaultStartingCoins, now)
	u.Inventory[AnimalCow] = 1
	u.LastHarvestAt[CropCarrot] = now

	c := u.Clone()
	c.Inventory[AnimalCow] = 5
	c.LastHarvestAt[CropCarrot] = now.Add(time.Hour)

	assert.Equal(t, int64(1), u.Count(AnimalCow), "clone must not alias inventory")
	assert.Equal(t, now, u.LastHarvestAt[CropCarrot], "clone must not alias cooldowns")
	assert.Equal(t, int64(0), u.Count(AnimalPig), "absent kinds read as zero")
}

func TestUserEqual(t *testing.T) {
	now := time.Now()
	a := NewUser(1, "a", 100, now)
	b := NewUser(1, "a", 100, now.Add(time.Minute))
	assert.True(t, a.Equal(b), "bookkeeping timestamps are ignored")

	b.Inventory[AnimalPig] = 0
	assert.True(t, a.Equal(b), "explicit zero counts equal absent counts")

	b.Coins = 101
	assert.False(t, a.Equal(b))
}

func TestErrorClasses(t *testing.T) {
	wrapped := fmt.Errorf("%w: details", ErrCooldownActive)

	assert.True(t, IsGameError(wrapped))
	assert.False(t, IsAuthError(wrapped))
	assert.True(t, IsAuthError(ErrExpired))
	assert.True(t, IsPaymentError(ErrInvalidPayload))
	assert.True(t, IsStorageError(ErrConflictRetryable), "conflicts are storage errors")
	assert.True(t, errors.Is(ErrConflictRetryable, ErrStorage))
	assert.False(t, IsStorageError(ErrInsufficientFunds))
}

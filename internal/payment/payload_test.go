package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

func TestParsePayload(t *testing.T) {
	tests := []struct {
		payload string
		want    domain.Effect
	}{
		{"add_coins_200", domain.Effect{Kind: domain.EffectCoinGrant, Coins: 200}},
		{"add_coins_1", domain.Effect{Kind: domain.EffectCoinGrant, Coins: 1}},
		{"add_coins_2147483647", domain.Effect{Kind: domain.EffectCoinGrant, Coins: domain.MaxBalance}},
		{"add_animal_cow", domain.Effect{Kind: domain.EffectItemGrant, Item: domain.AnimalCow}},
		{"add_animal_chicken", domain.Effect{Kind: domain.EffectItemGrant, Item: domain.AnimalChicken}},
	}

	for _, tt := range tests {
		t.Run(tt.payload, func(t *testing.T) {
			got, err := ParsePayload(tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePayload_Invalid(t *testing.T) {
	for _, payload := range []string{
		"",
		"bogus",
		"add_coins_",
		"add_coins_0",
		"add_coins_-5",
		"add_coins_+5",
		"add_coins_2147483648",
		"add_coins_99999999999",
		"add_coins_12a",
		"add_coins_1 ",
		"add_coins_١٢",
		"add_animal_",
		"add_animal_dragon",
		"add_animal_carrot",
		"add_animal_Cow",
		"ADD_COINS_10",
	} {
		t.Run(payload, func(t *testing.T) {
			_, err := ParsePayload(payload)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidPayload)
			assert.True(t, domain.IsPaymentError(err))
		})
	}
}

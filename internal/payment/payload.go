package payment

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

// ParsePayload maps an invoice payload to the effect it grants.
//
//	add_coins_<n>      n is 1..MaxBalance, ASCII digits only
//	add_animal_<kind>  kind is a purchasable animal
//
// Anything else is domain.ErrInvalidPayload.
func ParsePayload(payload string) (domain.Effect, error) {
	switch {
	case payload == "":
		return domain.Effect{}, fmt.Errorf("%w: %s", domain.ErrInvalidPayload, ErrMsgEmptyPayload)

	case strings.HasPrefix(payload, PrefixAddCoins):
		n, ok := parseCoins(strings.TrimPrefix(payload, PrefixAddCoins))
		if !ok {
			return domain.Effect{}, fmt.Errorf("%w: %s", domain.ErrInvalidPayload, ErrMsgBadAmount)
		}
		return domain.Effect{Kind: domain.EffectCoinGrant, Coins: n}, nil

	case strings.HasPrefix(payload, PrefixAddAnimal):
		kind := domain.AnimalKind(strings.TrimPrefix(payload, PrefixAddAnimal))
		if !kind.IsAnimal() {
			return domain.Effect{}, fmt.Errorf("%w: %s: %q", domain.ErrInvalidPayload, ErrMsgBadAnimal, kind)
		}
		return domain.Effect{Kind: domain.EffectItemGrant, Item: kind}, nil

	default:
		return domain.Effect{}, fmt.Errorf("%w: %s", domain.ErrInvalidPayload, ErrMsgUnknownGrammar)
	}
}

// parseCoins accepts only ASCII digits; strconv alone would allow a sign.
func parseCoins(s string) (int64, bool) {
	if s == "" || len(s) > maxCoinDigits {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 1 || n > domain.MaxBalance {
		return 0, false
	}
	return n, true
}

// describe renders an effect for the payment record detail column
func describe(effect domain.Effect) string {
	if effect.Kind == domain.EffectItemGrant {
		return fmt.Sprintf(DetailAnimalFmt, effect.Item)
	}
	return fmt.Sprintf(DetailCoinsFmt, effect.Coins)
}

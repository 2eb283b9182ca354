package domain

import (
	"time"
)

// User is the authoritative ledger entry for one Telegram account
type User struct {
	UserID        int64                  `json:"user_id"`
	DisplayName   string                 `json:"display_name"`
	Coins         int64                  `json:"coins"`
	Inventory     map[ItemKind]int64     `json:"inventory"`
	LastHarvestAt map[CropKind]time.Time `json:"last_harvest_at"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// NewUser returns the default state for a first-contact player.
func NewUser(userID int64, displayName string, startingCoins int64, now time.Time) User {
	return User{
		UserID:        userID,
		DisplayName:   displayName,
		Coins:         startingCoins,
		Inventory:     make(map[ItemKind]int64),
		LastHarvestAt: make(map[CropKind]time.Time),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Count returns the inventory count for kind, zero when absent.
func (u User) Count(kind ItemKind) int64 {
	return u.Inventory[kind]
}

// Clone returns a deep copy so mutations never alias stored maps.
func (u User) Clone() User {
	c := u
	c.Inventory = make(map[ItemKind]int64, len(u.Inventory))
	for k, v := range u.Inventory {
		c.Inventory[k] = v
	}
	c.LastHarvestAt = make(map[CropKind]time.Time, len(u.LastHarvestAt))
	for k, v := range u.LastHarvestAt {
		c.LastHarvestAt[k] = v
	}
	return c
}

// Equal compares ledger-relevant state, ignoring bookkeeping timestamps.
func (u User) Equal(o User) bool {
	if u.UserID != o.UserID || u.DisplayName != o.DisplayName || u.Coins != o.Coins {
		return false
	}
	if len(nonZero(u.Inventory)) != len(nonZero(o.Inventory)) {
		return false
	}
	for k, v := range nonZero(u.Inventory) {
		if o.Inventory[k] != v {
			return false
		}
	}
	if len(u.LastHarvestAt) != len(o.LastHarvestAt) {
		return false
	}
	for k, v := range u.LastHarvestAt {
		if !o.LastHarvestAt[k].Equal(v) {
			return false
		}
	}
	return true
}

func nonZero(m map[ItemKind]int64) map[ItemKind]int64 {
	out := make(map[ItemKind]int64, len(m))
	for k, v := range m {
		if v != 0 {
			out[k] = v
		}
	}
	return out
}

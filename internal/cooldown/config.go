package cooldown

import (
	"time"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

// Config holds per-crop harvest cooldowns
type Config struct {
	// DevMode bypasses all cooldowns when true
	DevMode bool

	// Cooldowns maps crops to their regrow durations.
	// Crops without an entry use DefaultCooldownDuration.
	Cooldowns map[domain.CropKind]time.Duration
}

// GetCooldownDuration returns the cooldown duration for a crop
func (c Config) GetCooldownDuration(crop domain.CropKind) time.Duration {
	if c.DevMode {
		return 0
	}
	if duration, ok := c.Cooldowns[crop]; ok {
		return duration
	}
	return DefaultCooldownDuration
}

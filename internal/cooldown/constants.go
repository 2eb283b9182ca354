package cooldown

import "time"

// =============================================================================
// Duration Constants
// =============================================================================

const (
	// DefaultCooldownDuration is the fallback cooldown when no specific duration is configured
	DefaultCooldownDuration = 5 * time.Minute
)

// =============================================================================
// Error Message Format Strings (for ErrOnCooldown.Error())
// =============================================================================

const (
	// ErrFmtCooldownWithMinutes formats cooldown error with minutes and seconds
	ErrFmtCooldownWithMinutes = "%s is growing, ready in %dm %ds"

	// ErrFmtCooldownSecondsOnly formats cooldown error with seconds only
	ErrFmtCooldownSecondsOnly = "%s is growing, ready in %ds"
)

// =============================================================================
// Time Conversion Constants
// =============================================================================

const (
	// SecondsPerMinute is used for time duration calculations
	SecondsPerMinute = 60
)

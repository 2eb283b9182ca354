// Package cooldown computes per-crop harvest cooldowns from the last harvest time
// stored on the player record.
package cooldown

import (
	"fmt"
	"time"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

// ErrOnCooldown is returned when a crop has not regrown yet
type ErrOnCooldown struct {
	Crop      domain.CropKind
	Remaining time.Duration
}

func (e ErrOnCooldown) Error() string {
	minutes := int(e.Remaining.Minutes())
	seconds := int(e.Remaining.Seconds()) % SecondsPerMinute

	if minutes > 0 {
		return fmt.Sprintf(ErrFmtCooldownWithMinutes, e.Crop, minutes, seconds)
	}
	return fmt.Sprintf(ErrFmtCooldownSecondsOnly, e.Crop, seconds)
}

// Is allows errors.Is() to match both ErrOnCooldown and domain.ErrCooldownActive
func (e ErrOnCooldown) Is(target error) bool {
	if target == domain.ErrCooldownActive {
		return true
	}
	_, ok := target.(ErrOnCooldown)
	return ok
}

// RetryAfterSeconds rounds the remaining time up to whole seconds
func (e ErrOnCooldown) RetryAfterSeconds() int64 {
	return ceilSeconds(e.Remaining)
}

// Check reports whether a crop last harvested at lastUsed is still cooling down at now.
// A zero lastUsed means the crop was never harvested.
func Check(now, lastUsed time.Time, duration time.Duration) (bool, time.Duration) {
	if lastUsed.IsZero() || duration <= 0 {
		return false, 0
	}
	readyAt := lastUsed.Add(duration)
	if !now.Before(readyAt) {
		return false, 0
	}
	return true, readyAt.Sub(now)
}

// Status is the client-facing cooldown view of one crop
type Status struct {
	Ready            bool      `json:"ready"`
	ReadyAt          time.Time `json:"readyAt"`
	RemainingSeconds int64     `json:"remainingSeconds"`
}

// View computes the status of every crop at now
func (c Config) View(now time.Time, lastHarvest map[domain.CropKind]time.Time, crops []domain.CropKind) map[domain.CropKind]Status {
	out := make(map[domain.CropKind]Status, len(crops))
	for _, crop := range crops {
		last := lastHarvest[crop]
		onCooldown, remaining := Check(now, last, c.GetCooldownDuration(crop))
		if !onCooldown {
			out[crop] = Status{Ready: true, ReadyAt: now}
			continue
		}
		out[crop] = Status{
			ReadyAt:          now.Add(remaining),
			RemainingSeconds: ceilSeconds(remaining),
		}
	}
	return out
}

func ceilSeconds(d time.Duration) int64 {
	secs := int64(d / time.Second)
	if d%time.Second > 0 {
		secs++
	}
	return secs
}

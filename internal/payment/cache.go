package payment

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

// settledCache remembers payment ids whose sentinel already exists,
// so repeated webhook deliveries skip storage.
// A miss is never authoritative; the store sentinel decides.
type settledCache struct {
	lru *expirable.LRU[string, domain.PaymentStatus]
}

func newSettledCache(size int, ttl time.Duration) *settledCache {
	return &settledCache{
		lru: expirable.NewLRU[string, domain.PaymentStatus](size, nil, ttl),
	}
}

// Seen reports whether paymentID was recorded recently
func (c *settledCache) Seen(paymentID string) bool {
	_, found := c.lru.Get(paymentID)
	return found
}

// Mark stores paymentID with the status it was left in
func (c *settledCache) Mark(paymentID string, status domain.PaymentStatus) {
	c.lru.Add(paymentID, status)
}

// Len is the number of cached payment ids
func (c *settledCache) Len() int {
	return c.lru.Len()
}

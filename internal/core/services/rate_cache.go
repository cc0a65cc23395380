package services

import (
	"sync"
	"time"
)

// cachedRate is the singleton current-rate entry. The whole struct is
// replaced on every write so a reader never observes a half-written entry.
type cachedRate struct {
	value     float64
	fetchedAt time.Time
}

// RateCache is process-local memory accelerating rate resolution: the last
// resolved current rate plus its fetch time, and a map from calendar date to
// historical rate. It performs no I/O and is safe for concurrent use. The
// persistent store stays authoritative across restarts; losing this cache
// costs latency and provenance, never correctness.
type RateCache struct {
	mu         sync.RWMutex
	ttl        time.Duration
	current    *cachedRate
	historical map[string]float64
}

// NewRateCache creates an empty RateCache whose current entry is considered
// fresh for ttl after each write.
func NewRateCache(ttl time.Duration) *RateCache {
	return &RateCache{
		ttl:        ttl,
		historical: make(map[string]float64),
	}
}

// GetCurrentIfFresh returns the cached current rate and its fetch time if the
// entry is still within its TTL.
func (c *RateCache) GetCurrentIfFresh() (float64, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil || time.Since(c.current.fetchedAt) >= c.ttl {
		return 0, time.Time{}, false
	}
	return c.current.value, c.current.fetchedAt, true
}

// GetCurrentAny returns the cached current rate regardless of age. Staleness
// is preferred over total failure when every live source is down.
func (c *RateCache) GetCurrentAny() (float64, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return 0, time.Time{}, false
	}
	return c.current.value, c.current.fetchedAt, true
}

// SetCurrent replaces the current entry and restarts its TTL.
func (c *RateCache) SetCurrent(value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = &cachedRate{value: value, fetchedAt: time.Now()}
}

// GetHistorical returns the cached rate for a date (YYYY-MM-DD), if present.
func (c *RateCache) GetHistorical(date string) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.historical[date]
	return v, ok
}

// SetHistorical records the rate for a date. Historical rates are immutable
// facts once established, so the first write for a date wins.
func (c *RateCache) SetHistorical(date string, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.historical[date]; ok {
		return
	}
	c.historical[date] = value
}

// Invalidate drops all cached state.
func (c *RateCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
	c.historical = make(map[string]float64)
}

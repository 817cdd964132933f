// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package simulation

import (
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/danielhkuo/housesim/models"
)

// Cache memoizes jurisdiction results by canonical input key. It is safe
// for concurrent use and unbounded until Reset.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]models.JurisdictionPRResult
	group   singleflight.Group
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]models.JurisdictionPRResult)}
}

// Get returns the cached result for key.
func (c *Cache) Get(key string) (models.JurisdictionPRResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res, ok := c.entries[key]
	return res, ok
}

// Put stores res under key, replacing any previous entry.
func (c *Cache) Put(key string, res models.JurisdictionPRResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = res
}

// Len reports the number of cached results.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Reset drops every entry and returns how many were cleared.
func (c *Cache) Reset() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.entries = make(map[string]models.JurisdictionPRResult)
	return n
}

// GetOrCompute returns the cached result for key, or runs compute and
// caches its result. Concurrent callers with the same key share a single
// computation. hit reports whether the value came from the cache.
func (c *Cache) GetOrCompute(key string, compute func() (models.JurisdictionPRResult, error)) (res models.JurisdictionPRResult, hit bool, err error) {
	if res, ok := c.Get(key); ok {
		return res, true, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if res, ok := c.Get(key); ok {
			return res, nil
		}
		res, err := compute()
		if err != nil {
			return nil, err
		}
		c.Put(key, res)
		return res, nil
	})
	if err != nil {
		return models.JurisdictionPRResult{}, false, err
	}
	return v.(models.JurisdictionPRResult), false, nil
}

// shareEntry keeps vote shares in roster order inside the cache key.
type shareEntry struct {
	Party models.PartyID `json:"p"`
	Share float64        `json:"s"`
}

type cacheKey struct {
	Jurisdiction string               `json:"j"`
	Seats        int                  `json:"n"`
	Shares       []shareEntry         `json:"v"`
	Settings     models.Settings      `json:"cfg"`
	Plan         *models.DistrictPlan `json:"plan,omitempty"`
	Parties      []models.PartyID     `json:"roster"`
}

// Key serializes the inputs of one jurisdiction run. shares must already be
// normalized over parties and settings already clamped, so equivalent
// inputs map to the same key.
func Key(code string, seats int, shares models.PartyShare, parties []models.PartyID, settings models.Settings, plan *models.DistrictPlan) (string, error) {
	k := cacheKey{
		Jurisdiction: code,
		Seats:        seats,
		Shares:       make([]shareEntry, len(parties)),
		Settings:     settings,
		Plan:         plan,
		Parties:      parties,
	}
	for i, p := range parties {
		k.Shares[i] = shareEntry{Party: p, Share: shares[p]}
	}

	b, err := json.Marshal(k)
	if err != nil {
		return "", fmt.Errorf("failed to encode cache key: %w", err)
	}
	return string(b), nil
}

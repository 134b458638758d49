package costing

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"github.com/RsrRuso/cocktailsop-sub017/internal/inventory"
)

// Cache memoizes Compute results on the full input tuple so repeated
// reads of an unchanged recipe do not recompute the breakdown.
//
// It is an explicit object with an injected TTL and an explicit
// Invalidate call, deliberately not a package-level singleton.
type Cache struct {
	calc *Calculator
	ttl  time.Duration

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	summary   *Summary
	expiresAt time.Time
}

// NewCache wraps a Calculator with memoization. A zero TTL means
// entries never expire until Invalidate is called.
func NewCache(calc *Calculator, ttl time.Duration) *Cache {
	return &Cache{
		calc:    calc,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

// Compute returns the memoized summary for this exact input tuple,
// computing and storing it on a miss or after expiry.
func (c *Cache) Compute(ingredients []Ingredient, inv []inventory.Item, yieldQty float64) *Summary {
	key := cacheKey(ingredients, inv, yieldQty)

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		if c.ttl == 0 || time.Now().Before(e.expiresAt) {
			return e.summary
		}
		delete(c.entries, key)
	}

	summary := c.calc.Compute(ingredients, inv, yieldQty)
	c.entries[key] = cacheEntry{
		summary:   summary,
		expiresAt: time.Now().Add(c.ttl),
	}
	return summary
}

// Invalidate drops every memoized summary. Call after any inventory
// cost or recipe edit.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Len reports the number of live entries. Used by tests and the cache
// stats endpoint.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func cacheKey(ingredients []Ingredient, inv []inventory.Item, yieldQty float64) string {
	payload, _ := json.Marshal(struct {
		Ingredients []Ingredient     `json:"i"`
		Inventory   []inventory.Item `json:"v"`
		YieldQty    float64          `json:"y"`
	}{ingredients, inv, yieldQty})

	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

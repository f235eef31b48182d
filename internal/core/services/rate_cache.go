package services

import (
	"sync"

	"github.com/shopspring/decimal"
)

// RateCache is the process-wide exchange rate table: read by any number of
// concurrent ledger operations, replaced wholesale by the single refresh
// job. Values are one unit of the currency expressed in the base currency.
type RateCache struct {
	mu           sync.RWMutex
	baseCurrency string
	rates        map[string]decimal.Decimal
}

// NewRateCache creates a cache that always resolves the base currency to 1.
func NewRateCache(baseCurrency string) *RateCache {
	return &RateCache{
		baseCurrency: baseCurrency,
		rates:        map[string]decimal.Decimal{baseCurrency: decimal.NewFromInt(1)},
	}
}

// BaseCurrency returns the fixed base currency code.
func (c *RateCache) BaseCurrency() string {
	return c.baseCurrency
}

// Rate returns the stored rate for the code.
func (c *RateCache) Rate(code string) (decimal.Decimal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rate, ok := c.rates[code]
	return rate, ok
}

// Set stores a single rate.
func (c *RateCache) Set(code string, rate decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rates[code] = rate
}

// Replace swaps the whole table in one step. The base currency entry is
// kept at 1 regardless of the input.
func (c *RateCache) Replace(rates map[string]decimal.Decimal) {
	next := make(map[string]decimal.Decimal, len(rates)+1)
	for code, rate := range rates {
		next[code] = rate
	}
	next[c.baseCurrency] = decimal.NewFromInt(1)

	c.mu.Lock()
	c.rates = next
	c.mu.Unlock()
}

package services_test

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farruhbek/business_accounting_app/internal/apperrors"
	"github.com/farruhbek/business_accounting_app/internal/core/services"
)

func newTestCache() *services.RateCache {
	cache := services.NewRateCache("UZS")
	cache.Set("USD", decimal.NewFromInt(12500))
	cache.Set("EUR", decimal.NewFromInt(13500))
	return cache
}

func TestConvert_SameCodeIsIdentity(t *testing.T) {
	conv := services.NewCurrencyConverter(newTestCache())

	// No rounding either: the fractional amount passes through as-is.
	amount := decimal.RequireFromString("123.456")
	got, err := conv.Convert("USD", "USD", amount)
	require.NoError(t, err)
	assert.True(t, got.Equal(amount))
}

func TestConvert_ThroughBase(t *testing.T) {
	conv := services.NewCurrencyConverter(newTestCache())

	got, err := conv.Convert("USD", "UZS", decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(25000)))

	got, err = conv.Convert("UZS", "USD", decimal.NewFromInt(25000))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(2)))
}

func TestConvert_CrossRateRoundsToTwoPlaces(t *testing.T) {
	conv := services.NewCurrencyConverter(newTestCache())

	// 100 USD -> EUR: 100 * 12500 / 13500 = 92.592... -> 92.59
	got, err := conv.Convert("USD", "EUR", decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("92.59")), "got %s", got)
}

func TestConvert_UnknownCodeFails(t *testing.T) {
	conv := services.NewCurrencyConverter(newTestCache())

	_, err := conv.Convert("GBP", "UZS", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, apperrors.ErrUnknownCurrency)

	_, err = conv.Convert("UZS", "GBP", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, apperrors.ErrUnknownCurrency)
}

func TestRateCache_ReplaceKeepsBasePinned(t *testing.T) {
	cache := newTestCache()

	cache.Replace(map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(13000),
		"UZS": decimal.NewFromInt(99), // must be ignored
	})

	base, ok := cache.Rate("UZS")
	require.True(t, ok)
	assert.True(t, base.Equal(decimal.NewFromInt(1)))

	usd, ok := cache.Rate("USD")
	require.True(t, ok)
	assert.True(t, usd.Equal(decimal.NewFromInt(13000)))

	_, ok = cache.Rate("EUR")
	assert.False(t, ok, "replace drops rates missing from the new table")
}

func TestRateCache_ConcurrentReadersAndWriter(t *testing.T) {
	cache := newTestCache()
	conv := services.NewCurrencyConverter(cache)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_, _ = conv.Convert("USD", "UZS", decimal.NewFromInt(1))
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 200; j++ {
			cache.Replace(map[string]decimal.Decimal{"USD": decimal.NewFromInt(int64(12000 + j))})
		}
	}()
	wg.Wait()

	base, ok := cache.Rate("UZS")
	require.True(t, ok)
	assert.True(t, base.Equal(decimal.NewFromInt(1)))
}

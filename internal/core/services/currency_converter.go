package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/farruhbek/business_accounting_app/internal/apperrors"
	"github.com/farruhbek/business_accounting_app/internal/core/domain"
	portssvc "github.com/farruhbek/business_accounting_app/internal/core/ports/services"
)

// CurrencyConverter converts amounts between currency codes using the
// cached rate table. Pure: it reads the cache and mutates nothing.
type CurrencyConverter struct {
	cache *RateCache
}

// NewCurrencyConverter creates a converter backed by the given cache.
func NewCurrencyConverter(cache *RateCache) *CurrencyConverter {
	return &CurrencyConverter{cache: cache}
}

var (
	_ domain.Converter      = (*CurrencyConverter)(nil)
	_ portssvc.ConverterSvc = (*CurrencyConverter)(nil)
)

// Convert converts amount from one currency code to another. Same-code
// conversion returns the amount unchanged with no rounding; cross-code
// conversion computes amount * rate[from] / rate[to] and rounds to 2
// decimal places, half away from zero.
func (c *CurrencyConverter) Convert(fromCode, toCode string, amount decimal.Decimal) (decimal.Decimal, error) {
	if fromCode == toCode {
		return amount, nil
	}

	fromRate, ok := c.cache.Rate(fromCode)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrUnknownCurrency, fromCode)
	}
	toRate, ok := c.cache.Rate(toCode)
	if !ok || toRate.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrUnknownCurrency, toCode)
	}

	return amount.Mul(fromRate).Div(toRate).Round(2), nil
}

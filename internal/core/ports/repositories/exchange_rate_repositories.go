package repositories

import (
	"context"

	"github.com/farruhbek/business_accounting_app/internal/core/domain"
)

// ExchangeRateRepository persists the rate table. Written by the refresh
// job and the rates endpoint; read to rebuild the in-process cache.
type ExchangeRateRepository interface {
	UpsertExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
	FindExchangeRate(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error)
	ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

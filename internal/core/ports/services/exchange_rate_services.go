package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/farruhbek/business_accounting_app/internal/core/domain"
	"github.com/farruhbek/business_accounting_app/internal/dto"
)

// ConverterSvc converts amounts between currency codes using the cached
// rate table. Same-code conversion is exact; cross-code results round to
// 2 decimal places, half away from zero.
type ConverterSvc interface {
	Convert(fromCode, toCode string, amount decimal.Decimal) (decimal.Decimal, error)
}

// ExchangeRateSvcFacade manages the rate table and the in-process cache.
type ExchangeRateSvcFacade interface {
	UpsertRate(ctx context.Context, req dto.UpsertExchangeRateRequest, userID string) (*domain.ExchangeRate, error)
	ListRates(ctx context.Context) ([]domain.ExchangeRate, error)
	RefreshCache(ctx context.Context) error
}

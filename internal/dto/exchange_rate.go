package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/farruhbek/business_accounting_app/internal/core/domain"
)

// UpsertExchangeRateRequest sets the rate of one currency against the base.
type UpsertExchangeRateRequest struct {
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3"`
	Rate         decimal.Decimal `json:"rate" binding:"required"`
}

// ExchangeRateResponse is the API representation of a stored rate.
type ExchangeRateResponse struct {
	CurrencyCode string          `json:"currencyCode"`
	Rate         decimal.Decimal `json:"rate"`
	FetchedAt    time.Time       `json:"fetchedAt"`
}

// ConvertRequest asks for a one-off conversion between two codes.
type ConvertRequest struct {
	From   string          `form:"from" binding:"required,len=3"`
	To     string          `form:"to" binding:"required,len=3"`
	Amount decimal.Decimal `form:"amount" binding:"required"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate.
func ToExchangeRateResponse(r *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		CurrencyCode: r.CurrencyCode,
		Rate:         r.Rate,
		FetchedAt:    r.FetchedAt,
	}
}

// ToExchangeRateResponses converts a slice of rates.
func ToExchangeRateResponses(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}

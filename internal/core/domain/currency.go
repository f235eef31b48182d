package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency represents a supported currency.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary key, e.g. "UZS"
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	AuditFields
}

// ExchangeRate maps a currency code to the value of one unit expressed in
// the base currency. Refreshed out-of-band; read-only for ledger operations.
type ExchangeRate struct {
	CurrencyCode string          `json:"currencyCode"`
	Rate         decimal.Decimal `json:"rate"` // value of 1 unit in base currency
	FetchedAt    time.Time       `json:"fetchedAt"`
	AuditFields
}

package domain

import "github.com/shopspring/decimal"

// Product is a sellable item (baskets, packed produce). Quantity changes
// only through sale item effects and their reversals.
type Product struct {
	ProductID    string          `json:"productID"`
	Name         string          `json:"name"`
	SectionID    string          `json:"sectionID"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	CurrencyCode string          `json:"currencyCode"`
	AuditFields
}

// RawMaterial is purchased stock tracked by weight. Weight changes only
// through raw material receipt effects and their reversals.
type RawMaterial struct {
	RawMaterialID string          `json:"rawMaterialID"`
	Name          string          `json:"name"`
	Weight        decimal.Decimal `json:"weight"` // kilograms
	AuditFields
}

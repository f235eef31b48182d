package dto

import (
	"github.com/shopspring/decimal"

	"github.com/farruhbek/business_accounting_app/internal/core/domain"
)

// CreateProductRequest registers a sellable product.
type CreateProductRequest struct {
	Name         string          `json:"name" binding:"required"`
	SectionID    string          `json:"sectionID" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3"`
}

// ProductResponse is the API representation of a product.
type ProductResponse struct {
	ProductID    string          `json:"productID"`
	Name         string          `json:"name"`
	SectionID    string          `json:"sectionID"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	CurrencyCode string          `json:"currencyCode"`
}

// CreateRawMaterialRequest registers a raw material stock line.
type CreateRawMaterialRequest struct {
	Name string `json:"name" binding:"required"`
}

// RawMaterialResponse is the API representation of a raw material.
type RawMaterialResponse struct {
	RawMaterialID string          `json:"rawMaterialID"`
	Name          string          `json:"name"`
	Weight        decimal.Decimal `json:"weight"`
}

// ToProductResponse converts a domain.Product.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:    p.ProductID,
		Name:         p.Name,
		SectionID:    p.SectionID,
		Quantity:     p.Quantity,
		UnitPrice:    p.UnitPrice,
		CurrencyCode: p.CurrencyCode,
	}
}

// ToRawMaterialResponse converts a domain.RawMaterial.
func ToRawMaterialResponse(m *domain.RawMaterial) RawMaterialResponse {
	return RawMaterialResponse{
		RawMaterialID: m.RawMaterialID,
		Name:          m.Name,
		Weight:        m.Weight,
	}
}

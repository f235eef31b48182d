package services

import (
	"context"

	"github.com/farruhbek/business_accounting_app/internal/core/domain"
	"github.com/farruhbek/business_accounting_app/internal/dto"
)

// InventorySvcFacade manages products and raw materials. Stock levels move
// only through ledger entries.
type InventorySvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, sectionID string, limit, offset int) ([]domain.Product, error)

	CreateRawMaterial(ctx context.Context, req dto.CreateRawMaterialRequest, creatorUserID string) (*domain.RawMaterial, error)
	GetRawMaterialByID(ctx context.Context, rawMaterialID string) (*domain.RawMaterial, error)
	ListRawMaterials(ctx context.Context, limit, offset int) ([]domain.RawMaterial, error)
}

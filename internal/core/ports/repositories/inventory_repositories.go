package repositories

import (
	"context"

	"github.com/farruhbek/business_accounting_app/internal/core/domain"
)

// InventoryRepository persists products and raw materials. Stock levels
// are adjusted only through LedgerTx inside the atomic scope.
type InventoryRepository interface {
	SaveProduct(ctx context.Context, product domain.Product) error
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, sectionID string, limit, offset int) ([]domain.Product, error)

	SaveRawMaterial(ctx context.Context, material domain.RawMaterial) error
	FindRawMaterialByID(ctx context.Context, rawMaterialID string) (*domain.RawMaterial, error)
	ListRawMaterials(ctx context.Context, limit, offset int) ([]domain.RawMaterial, error)
}

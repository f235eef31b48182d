package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farruhbek/business_accounting_app/internal/core/domain"
	portsrepo "github.com/farruhbek/business_accounting_app/internal/core/ports/repositories"
	portssvc "github.com/farruhbek/business_accounting_app/internal/core/ports/services"
	"github.com/farruhbek/business_accounting_app/internal/dto"
)

// inventoryService manages products and raw materials. It never touches
// stock levels; those move only through ledger entry effects.
type inventoryService struct {
	BaseService
	inventoryRepo portsrepo.InventoryRepository
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepository) portssvc.InventorySvcFacade {
	return &inventoryService{inventoryRepo: inventoryRepo}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// CreateProduct registers a sellable product.
func (s *inventoryService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error) {
	now := time.Now().UTC()
	product := domain.Product{
		ProductID:    uuid.NewString(),
		Name:         req.Name,
		SectionID:    req.SectionID,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		CurrencyCode: strings.ToUpper(req.CurrencyCode),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.inventoryRepo.SaveProduct(ctx, product); err != nil {
		s.LogError(ctx, err, "Failed to save product", "name", req.Name)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

// GetProductByID retrieves a product with its current stock level.
func (s *inventoryService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.inventoryRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	return product, nil
}

// ListProducts retrieves a page of products, optionally by section.
func (s *inventoryService) ListProducts(ctx context.Context, sectionID string, limit, offset int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 50
	}
	products, err := s.inventoryRepo.ListProducts(ctx, sectionID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// CreateRawMaterial registers a raw material line with zero weight.
func (s *inventoryService) CreateRawMaterial(ctx context.Context, req dto.CreateRawMaterialRequest, creatorUserID string) (*domain.RawMaterial, error) {
	now := time.Now().UTC()
	material := domain.RawMaterial{
		RawMaterialID: uuid.NewString(),
		Name:          req.Name,
		Weight:        decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.inventoryRepo.SaveRawMaterial(ctx, material); err != nil {
		s.LogError(ctx, err, "Failed to save raw material", "name", req.Name)
		return nil, fmt.Errorf("failed to create raw material: %w", err)
	}
	return &material, nil
}

// GetRawMaterialByID retrieves a raw material with its current weight.
func (s *inventoryService) GetRawMaterialByID(ctx context.Context, rawMaterialID string) (*domain.RawMaterial, error) {
	material, err := s.inventoryRepo.FindRawMaterialByID(ctx, rawMaterialID)
	if err != nil {
		return nil, fmt.Errorf("failed to find raw material %s: %w", rawMaterialID, err)
	}
	return material, nil
}

// ListRawMaterials retrieves a page of raw materials.
func (s *inventoryService) ListRawMaterials(ctx context.Context, limit, offset int) ([]domain.RawMaterial, error) {
	if limit <= 0 {
		limit = 50
	}
	materials, err := s.inventoryRepo.ListRawMaterials(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list raw materials: %w", err)
	}
	return materials, nil
}

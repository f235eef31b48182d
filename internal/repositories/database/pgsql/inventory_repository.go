package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farruhbek/business_accounting_app/internal/apperrors"
	"github.com/farruhbek/business_accounting_app/internal/core/domain"
	portsrepo "github.com/farruhbek/business_accounting_app/internal/core/ports/repositories"
)

type PgxInventoryRepository struct {
	BaseRepository
}

func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepository {
	return &PgxInventoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InventoryRepository = (*PgxInventoryRepository)(nil)

// SaveProduct inserts a new product row.
func (r *PgxInventoryRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	query := `
		INSERT INTO products (product_id, name, section_id, quantity, unit_price, currency_code,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		product.ProductID,
		product.Name,
		product.SectionID,
		product.Quantity,
		product.UnitPrice,
		product.CurrencyCode,
		product.CreatedAt,
		product.CreatedBy,
		product.LastUpdatedAt,
		product.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: product %s", apperrors.ErrDuplicate, product.Name)
		}
		return fmt.Errorf("failed to insert product %s: %w", product.ProductID, err)
	}
	return nil
}

// FindProductByID retrieves a product by primary key.
func (r *PgxInventoryRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `
		SELECT product_id, name, section_id, quantity, unit_price, currency_code,
			created_at, created_by, last_updated_at, last_updated_by
		FROM products
		WHERE product_id = $1;
	`
	var product domain.Product
	err := r.Pool.QueryRow(ctx, query, productID).Scan(
		&product.ProductID,
		&product.Name,
		&product.SectionID,
		&product.Quantity,
		&product.UnitPrice,
		&product.CurrencyCode,
		&product.CreatedAt,
		&product.CreatedBy,
		&product.LastUpdatedAt,
		&product.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID %s: %w", productID, err)
	}
	return &product, nil
}

// ListProducts retrieves a page of products, optionally filtered by section.
func (r *PgxInventoryRepository) ListProducts(ctx context.Context, sectionID string, limit, offset int) ([]domain.Product, error) {
	query := `
		SELECT product_id, name, section_id, quantity, unit_price, currency_code,
			created_at, created_by, last_updated_at, last_updated_by
		FROM products
		WHERE ($1 = '' OR section_id = $1)
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, sectionID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ProductID,
			&product.Name,
			&product.SectionID,
			&product.Quantity,
			&product.UnitPrice,
			&product.CurrencyCode,
			&product.CreatedAt,
			&product.CreatedBy,
			&product.LastUpdatedAt,
			&product.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading product rows: %w", err)
	}
	return products, nil
}

// SaveRawMaterial inserts a new raw material row.
func (r *PgxInventoryRepository) SaveRawMaterial(ctx context.Context, material domain.RawMaterial) error {
	query := `
		INSERT INTO raw_materials (raw_material_id, name, weight, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		material.RawMaterialID,
		material.Name,
		material.Weight,
		material.CreatedAt,
		material.CreatedBy,
		material.LastUpdatedAt,
		material.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: raw material %s", apperrors.ErrDuplicate, material.Name)
		}
		return fmt.Errorf("failed to insert raw material %s: %w", material.RawMaterialID, err)
	}
	return nil
}

// FindRawMaterialByID retrieves a raw material by primary key.
func (r *PgxInventoryRepository) FindRawMaterialByID(ctx context.Context, rawMaterialID string) (*domain.RawMaterial, error) {
	query := `
		SELECT raw_material_id, name, weight, created_at, created_by, last_updated_at, last_updated_by
		FROM raw_materials
		WHERE raw_material_id = $1;
	`
	var material domain.RawMaterial
	err := r.Pool.QueryRow(ctx, query, rawMaterialID).Scan(
		&material.RawMaterialID,
		&material.Name,
		&material.Weight,
		&material.CreatedAt,
		&material.CreatedBy,
		&material.LastUpdatedAt,
		&material.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find raw material by ID %s: %w", rawMaterialID, err)
	}
	return &material, nil
}

// ListRawMaterials retrieves a page of raw materials.
func (r *PgxInventoryRepository) ListRawMaterials(ctx context.Context, limit, offset int) ([]domain.RawMaterial, error) {
	query := `
		SELECT raw_material_id, name, weight, created_at, created_by, last_updated_at, last_updated_by
		FROM raw_materials
		ORDER BY name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list raw materials: %w", err)
	}
	defer rows.Close()

	var materials []domain.RawMaterial
	for rows.Next() {
		var material domain.RawMaterial
		if err := rows.Scan(
			&material.RawMaterialID,
			&material.Name,
			&material.Weight,
			&material.CreatedAt,
			&material.CreatedBy,
			&material.LastUpdatedAt,
			&material.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan raw material row: %w", err)
		}
		materials = append(materials, material)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading raw material rows: %w", err)
	}
	return materials, nil
}

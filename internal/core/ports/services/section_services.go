package services

import (
	"context"

	"github.com/farruhbek/business_accounting_app/internal/core/domain"
	"github.com/farruhbek/business_accounting_app/internal/dto"
)

// SectionSvcFacade manages operating divisions and their pseudo-accounts.
type SectionSvcFacade interface {
	CreateSection(ctx context.Context, req dto.CreateSectionRequest, creatorUserID string) (*domain.Section, error)
	GetSectionByID(ctx context.Context, sectionID string) (*domain.Section, error)
	ListSections(ctx context.Context) ([]domain.Section, error)
}

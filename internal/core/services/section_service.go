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

// sectionService manages operating divisions. Each section owns a
// pseudo-account so inter-section movement flows through the ledger like
// any other transfer.
type sectionService struct {
	BaseService
	sectionRepo portsrepo.SectionRepository
	accountRepo portsrepo.AccountRepository
}

// NewSectionService creates a new section service.
func NewSectionService(sectionRepo portsrepo.SectionRepository, accountRepo portsrepo.AccountRepository) portssvc.SectionSvcFacade {
	return &sectionService{sectionRepo: sectionRepo, accountRepo: accountRepo}
}

var _ portssvc.SectionSvcFacade = (*sectionService)(nil)

// CreateSection registers a division and its pseudo-account.
func (s *sectionService) CreateSection(ctx context.Context, req dto.CreateSectionRequest, creatorUserID string) (*domain.Section, error) {
	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	section := domain.Section{
		SectionID:   uuid.NewString(),
		Name:        req.Name,
		Kind:        domain.SectionKind(strings.ToUpper(req.Kind)),
		AuditFields: audit,
	}

	account := domain.Account{
		AccountID:     uuid.NewString(),
		OwnerID:       section.SectionID,
		OwnerType:     domain.OwnerSection,
		Name:          req.Name,
		CurrencyCode:  strings.ToUpper(req.CurrencyCode),
		Balance:       decimal.Zero,
		Debt:          decimal.Zero,
		CreditAdvance: decimal.Zero,
		IsActive:      true,
		AuditFields:   audit,
	}
	section.AccountID = account.AccountID

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to create section account", "name", req.Name)
		return nil, fmt.Errorf("failed to create section account: %w", err)
	}
	if err := s.sectionRepo.SaveSection(ctx, section); err != nil {
		s.LogError(ctx, err, "Failed to save section", "name", req.Name)
		return nil, fmt.Errorf("failed to create section: %w", err)
	}

	s.LogInfo(ctx, "Section created", "section_id", section.SectionID, "kind", string(section.Kind))
	return &section, nil
}

// GetSectionByID retrieves a section.
func (s *sectionService) GetSectionByID(ctx context.Context, sectionID string) (*domain.Section, error) {
	section, err := s.sectionRepo.FindSectionByID(ctx, sectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find section %s: %w", sectionID, err)
	}
	return section, nil
}

// ListSections retrieves every section.
func (s *sectionService) ListSections(ctx context.Context) ([]domain.Section, error) {
	sections, err := s.sectionRepo.ListSections(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	return sections, nil
}

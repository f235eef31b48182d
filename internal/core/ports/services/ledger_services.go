package services

import (
	"context"

	"github.com/farruhbek/business_accounting_app/internal/core/domain"
	"github.com/farruhbek/business_accounting_app/internal/dto"
)

// LedgerSvcFacade orchestrates the atomic reverse-then-apply protocol for
// every entry kind. Create applies an effect, update reverses the previous
// snapshot's effect before applying the new one, delete reverses only.
type LedgerSvcFacade interface {
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.Entry, error)
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.Entry, error)
	DeleteEntry(ctx context.Context, entryID string, userID string) error
	GetEntryByID(ctx context.Context, entryID string) (*domain.Entry, error)
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farruhbek/business_accounting_app/internal/apperrors"
	"github.com/farruhbek/business_accounting_app/internal/core/domain"
	portsrepo "github.com/farruhbek/business_accounting_app/internal/core/ports/repositories"
	portssvc "github.com/farruhbek/business_accounting_app/internal/core/ports/services"
	"github.com/farruhbek/business_accounting_app/internal/dto"
	"github.com/farruhbek/business_accounting_app/internal/notify"
)

// ledgerService sequences the reverse-then-apply protocol for every entry
// kind inside one repository transaction. Both the record write and every
// balance adjustment commit or roll back together.
type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepository
	userRepo   portsrepo.UserRepository
	converter  portssvc.ConverterSvc
	notifier   notify.Notifier
}

// NewLedgerService creates the ledger service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepository, userRepo portsrepo.UserRepository, converter portssvc.ConverterSvc, notifier notify.Notifier) portssvc.LedgerSvcFacade {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		userRepo:   userRepo,
		converter:  converter,
		notifier:   notifier,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// CreateEntry validates the request, applies the entry's balance effect and
// persists the record in one atomic scope.
func (s *ledgerService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.Entry, error) {
	kind := domain.EntryKind(strings.ToUpper(req.Kind))
	if !domain.ValidKind(kind) {
		return nil, fmt.Errorf("%w: entry kind %q", apperrors.ErrInvalidEntryType, req.Kind)
	}

	creator, err := s.userRepo.FindUserByID(ctx, creatorUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load creating user: %w", err)
	}

	now := time.Now().UTC()
	entry := domain.Entry{
		EntryID:               uuid.NewString(),
		Kind:                  kind,
		Amount:                req.Amount,
		CurrencyCode:          strings.ToUpper(req.CurrencyCode),
		CreatorAccountID:      creator.AccountID,
		CounterpartyAccountID: req.CounterpartyAccountID,
		BankAccountID:         req.BankAccountID,
		ProductID:             req.ProductID,
		RawMaterialID:         req.RawMaterialID,
		Direction:             domain.Direction(req.Direction),
		FlowType:              domain.FlowType(req.FlowType),
		Quantity:              req.Quantity,
		UnitPrice:             req.UnitPrice,
		IsDebt:                req.IsDebt,
		SectionID:             req.SectionID,
		Status:                domain.EntryNew,
		Notes:                 req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	entry.Normalize()

	if entry.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: entry amount must be positive", apperrors.ErrValidation)
	}
	if creator.AutoVerifies() {
		entry.Status = domain.EntryVerified
	}

	err = s.ledgerRepo.WithTx(ctx, func(tx portsrepo.LedgerTx) error {
		accounts, err := tx.LockAccounts(ctx, entry.AffectedAccountIDs())
		if err != nil {
			return err
		}
		eff, err := domain.BuildEffect(entry, accounts, s.converter)
		if err != nil {
			return err
		}
		if err := applyEffect(ctx, tx, eff, creatorUserID, now); err != nil {
			return err
		}
		return tx.SaveEntry(ctx, entry)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create ledger entry", "kind", string(kind))
		return nil, err
	}

	s.LogInfo(ctx, "Ledger entry created", "entry_id", entry.EntryID, "kind", string(kind))
	s.emit(describeEntry("recorded", entry))
	return &entry, nil
}

// UpdateEntry reverses the previous persisted snapshot's effect, persists
// the merged fields and applies the new effect, all in one atomic scope.
// The reversal reconverts the stored amount at current rates.
func (s *ledgerService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.Entry, error) {
	now := time.Now().UTC()
	var updated *domain.Entry

	err := s.ledgerRepo.WithTx(ctx, func(tx portsrepo.LedgerTx) error {
		prev, err := tx.FindEntryByID(ctx, entryID)
		if err != nil {
			return err
		}

		next := mergeEntry(*prev, req)
		if next.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: entry amount must be positive", apperrors.ErrValidation)
		}
		next.LastUpdatedAt = now
		next.LastUpdatedBy = userID

		// Lock the union of the old and new account sets: re-assigning
		// an entry to a different counterparty adjusts both.
		ids := unionIDs(prev.AffectedAccountIDs(), next.AffectedAccountIDs())
		accounts, err := tx.LockAccounts(ctx, ids)
		if err != nil {
			return err
		}

		reversal, err := domain.BuildReversal(*prev, accounts, s.converter)
		if err != nil {
			return err
		}
		if err := applyEffect(ctx, tx, reversal, userID, now); err != nil {
			return err
		}
		// The new effect must see post-reversal balances for the debt
		// cap and the offset rule.
		domain.ApplyToSnapshot(accounts, reversal)

		eff, err := domain.BuildEffect(next, accounts, s.converter)
		if err != nil {
			return err
		}
		if err := applyEffect(ctx, tx, eff, userID, now); err != nil {
			return err
		}

		if err := tx.UpdateEntry(ctx, next); err != nil {
			return err
		}
		updated = &next
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update ledger entry", "entry_id", entryID)
		return nil, err
	}

	s.LogInfo(ctx, "Ledger entry updated", "entry_id", entryID)
	s.emit(describeEntry("updated", *updated))
	return updated, nil
}

// DeleteEntry reverses the entry's effect and removes the record in one
// atomic scope.
func (s *ledgerService) DeleteEntry(ctx context.Context, entryID string, userID string) error {
	now := time.Now().UTC()
	var removed domain.Entry

	err := s.ledgerRepo.WithTx(ctx, func(tx portsrepo.LedgerTx) error {
		prev, err := tx.FindEntryByID(ctx, entryID)
		if err != nil {
			return err
		}

		accounts, err := tx.LockAccounts(ctx, prev.AffectedAccountIDs())
		if err != nil {
			return err
		}
		reversal, err := domain.BuildReversal(*prev, accounts, s.converter)
		if err != nil {
			return err
		}
		if err := applyEffect(ctx, tx, reversal, userID, now); err != nil {
			return err
		}

		removed = *prev
		return tx.DeleteEntry(ctx, entryID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete ledger entry", "entry_id", entryID)
		return err
	}

	s.LogInfo(ctx, "Ledger entry deleted", "entry_id", entryID)
	s.emit(describeEntry("deleted", removed))
	return nil
}

// GetEntryByID retrieves a single entry.
func (s *ledgerService) GetEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	return entry, nil
}

// ListEntries retrieves a filtered page of entries.
func (s *ledgerService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	filter := portsrepo.EntryListFilter{
		Kind:      domain.EntryKind(strings.ToUpper(params.Kind)),
		SectionID: params.SectionID,
		AccountID: params.AccountID,
	}
	entries, err := s.ledgerRepo.ListEntries(ctx, filter, limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return &dto.ListEntriesResponse{Entries: dto.ToEntryResponses(entries)}, nil
}

// applyEffect pushes the effect's account and stock deltas through the
// transaction as single-statement atomic increments.
func applyEffect(ctx context.Context, tx portsrepo.LedgerTx, eff domain.Effect, userID string, now time.Time) error {
	if err := tx.ApplyAccountDeltas(ctx, eff.Accounts, userID, now); err != nil {
		return err
	}
	for _, sd := range eff.Stock {
		if sd.Delta.IsZero() {
			continue
		}
		var err error
		switch {
		case sd.ProductID != "":
			err = tx.AdjustProductQuantity(ctx, sd.ProductID, sd.Delta)
		case sd.RawMaterialID != "":
			err = tx.AdjustRawMaterialWeight(ctx, sd.RawMaterialID, sd.Delta)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// emit sends a notification without blocking the caller. Delivery failures
// are the sink's problem, never the ledger's.
func (s *ledgerService) emit(text string) {
	go s.notifier.Notify(context.Background(), text)
}

func describeEntry(action string, e domain.Entry) string {
	return fmt.Sprintf("%s %s: %s %s (entry %s)",
		strings.ToLower(string(e.Kind)), action, e.Amount.StringFixed(2), e.CurrencyCode, e.EntryID)
}

// mergeEntry overlays the non-nil request fields onto the previous
// snapshot. A sale item whose quantity or price changed without an explicit
// amount gets its amount recomputed.
func mergeEntry(prev domain.Entry, req dto.UpdateEntryRequest) domain.Entry {
	next := prev
	if req.Amount != nil {
		next.Amount = *req.Amount
	}
	if req.CurrencyCode != nil {
		next.CurrencyCode = strings.ToUpper(*req.CurrencyCode)
	}
	if req.CounterpartyAccountID != nil {
		next.CounterpartyAccountID = *req.CounterpartyAccountID
	}
	if req.BankAccountID != nil {
		next.BankAccountID = *req.BankAccountID
	}
	if req.ProductID != nil {
		next.ProductID = *req.ProductID
	}
	if req.RawMaterialID != nil {
		next.RawMaterialID = *req.RawMaterialID
	}
	if req.Direction != nil {
		next.Direction = domain.Direction(*req.Direction)
	}
	if req.FlowType != nil {
		next.FlowType = domain.FlowType(*req.FlowType)
	}
	if req.Quantity != nil {
		next.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		next.UnitPrice = *req.UnitPrice
	}
	if req.IsDebt != nil {
		next.IsDebt = *req.IsDebt
	}
	if req.Notes != nil {
		next.Notes = *req.Notes
	}
	if next.Kind == domain.KindSaleItem && req.Amount == nil && (req.Quantity != nil || req.UnitPrice != nil) {
		next.Amount = next.Quantity.Mul(next.UnitPrice)
	}
	return next
}

func unionIDs(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, id := range a {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	for _, id := range b {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

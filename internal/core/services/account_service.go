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

// accountService manages ledger accounts. Balances are read-only here;
// mutation happens exclusively through ledger entry effects.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepository) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount registers a new balance-holding account with zeroed balances.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	now := time.Now().UTC()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		OwnerID:       req.OwnerID,
		OwnerType:     domain.OwnerType(strings.ToUpper(req.OwnerType)),
		Name:          req.Name,
		CurrencyCode:  strings.ToUpper(req.CurrencyCode),
		Balance:       decimal.Zero,
		Debt:          decimal.Zero,
		CreditAdvance: decimal.Zero,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", "owner_id", req.OwnerID)
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.LogInfo(ctx, "Account created", "account_id", account.AccountID, "owner_type", string(account.OwnerType))
	return &account, nil
}

// GetAccountByID retrieves an account with its current balances.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// ListAccounts retrieves a page of accounts, optionally by owner type.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, domain.OwnerType(strings.ToUpper(params.OwnerType)), limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// DeactivateAccount soft-deletes an account. Its balances stay intact for
// historical entries.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", "account_id", accountID)
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	s.LogInfo(ctx, "Account deactivated", "account_id", accountID)
	return nil
}

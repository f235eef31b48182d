package services

import (
	"context"

	"github.com/farruhbek/business_accounting_app/internal/core/domain"
	"github.com/farruhbek/business_accounting_app/internal/dto"
)

// AccountSvcFacade manages ledger accounts.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error)
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

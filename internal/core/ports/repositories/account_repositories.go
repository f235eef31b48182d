package repositories

import (
	"context"

	"github.com/farruhbek/business_accounting_app/internal/core/domain"
)

// AccountRepository persists ledger accounts. Balance mutation happens
// only through LedgerTx.ApplyAccountDeltas; this interface is read/create.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, ownerType domain.OwnerType, limit, offset int) ([]domain.Account, error)
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

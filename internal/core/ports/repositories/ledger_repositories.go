package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farruhbek/business_accounting_app/internal/core/domain"
)

// LedgerTx is the set of storage operations available inside one atomic
// scope. Every balance adjustment is a single conditional increment
// statement against the locked row; never read-modify-write.
type LedgerTx interface {
	// LockAccounts reads the referenced accounts FOR UPDATE, holding
	// row locks for the rest of the transaction.
	LockAccounts(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	// ApplyAccountDeltas applies batched atomic increments to the
	// locked accounts' sub-balances.
	ApplyAccountDeltas(ctx context.Context, deltas []domain.AccountDelta, userID string, now time.Time) error
	AdjustProductQuantity(ctx context.Context, productID string, delta decimal.Decimal) error
	AdjustRawMaterialWeight(ctx context.Context, rawMaterialID string, delta decimal.Decimal) error

	SaveEntry(ctx context.Context, entry domain.Entry) error
	UpdateEntry(ctx context.Context, entry domain.Entry) error
	DeleteEntry(ctx context.Context, entryID string) error
	// FindEntryByID reads the persisted snapshot of an entry inside the
	// transaction, before any field is overwritten.
	FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error)
}

// EntryListFilter narrows entry listings.
type EntryListFilter struct {
	Kind      domain.EntryKind
	SectionID string
	AccountID string
}

// LedgerRepository persists entries and runs the atomic reverse/apply scope.
type LedgerRepository interface {
	// WithTx runs fn inside one database transaction; any error rolls
	// back every balance mutation and record write performed through
	// the LedgerTx.
	WithTx(ctx context.Context, fn func(tx LedgerTx) error) error

	FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error)
	ListEntries(ctx context.Context, filter EntryListFilter, limit, offset int) ([]domain.Entry, error)
}

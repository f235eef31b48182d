package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/farruhbek/business_accounting_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository over one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo:      newPgxAccountRepository(pool),
		LedgerRepo:       newPgxLedgerRepository(pool),
		ExchangeRateRepo: newPgxExchangeRateRepository(pool),
		UserRepo:         newPgxUserRepository(pool),
		SectionRepo:      newPgxSectionRepository(pool),
		InventoryRepo:    newPgxInventoryRepository(pool),
	}
}

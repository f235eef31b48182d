package repositories

// RepositoryProvider bundles every repository implementation so service
// wiring takes a single dependency.
type RepositoryProvider struct {
	AccountRepo      AccountRepository
	LedgerRepo       LedgerRepository
	ExchangeRateRepo ExchangeRateRepository
	UserRepo         UserRepository
	SectionRepo      SectionRepository
	InventoryRepo    InventoryRepository
}

package services

import (
	portsrepo "github.com/farruhbek/business_accounting_app/internal/core/ports/repositories"
	portssvc "github.com/farruhbek/business_accounting_app/internal/core/ports/services"
	"github.com/farruhbek/business_accounting_app/internal/notify"
)

// Container holds all the services and manages their dependencies.
type Container struct {
	Account      portssvc.AccountSvcFacade
	ExchangeRate portssvc.ExchangeRateSvcFacade
	Converter    portssvc.ConverterSvc
	User         portssvc.UserSvcFacade
	Section      portssvc.SectionSvcFacade
	Inventory    portssvc.InventorySvcFacade
	Ledger       portssvc.LedgerSvcFacade
}

// NewContainer wires every service against the repository provider, the
// shared rate cache and the injected notification sink.
func NewContainer(repos *portsrepo.RepositoryProvider, cache *RateCache, notifier notify.Notifier) *Container {
	converter := NewCurrencyConverter(cache)

	return &Container{
		Account:      NewAccountService(repos.AccountRepo),
		ExchangeRate: NewExchangeRateService(repos.ExchangeRateRepo, cache),
		Converter:    converter,
		User:         NewUserService(repos.UserRepo, repos.AccountRepo),
		Section:      NewSectionService(repos.SectionRepo, repos.AccountRepo),
		Inventory:    NewInventoryService(repos.InventoryRepo),
		Ledger:       NewLedgerService(repos.LedgerRepo, repos.UserRepo, converter, notifier),
	}
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farruhbek/business_accounting_app/internal/apperrors"
	"github.com/farruhbek/business_accounting_app/internal/core/domain"
	portsrepo "github.com/farruhbek/business_accounting_app/internal/core/ports/repositories"
	portssvc "github.com/farruhbek/business_accounting_app/internal/core/ports/services"
	"github.com/farruhbek/business_accounting_app/internal/dto"
)

// exchangeRateService manages the persisted rate table and keeps the
// in-process cache in sync with it.
type exchangeRateService struct {
	BaseService
	rateRepo portsrepo.ExchangeRateRepository
	cache    *RateCache
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepository, cache *RateCache) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{rateRepo: rateRepo, cache: cache}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// UpsertRate stores the value of one unit of the currency in base units
// and updates the cache immediately.
func (s *exchangeRateService) UpsertRate(ctx context.Context, req dto.UpsertExchangeRateRequest, userID string) (*domain.ExchangeRate, error) {
	code := strings.ToUpper(req.CurrencyCode)
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if code == s.cache.BaseCurrency() && !req.Rate.Equal(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: base currency rate is fixed at 1", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	rate := domain.ExchangeRate{
		CurrencyCode: code,
		Rate:         req.Rate,
		FetchedAt:    now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.rateRepo.UpsertExchangeRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "Failed to upsert exchange rate", "currency", code)
		return nil, fmt.Errorf("failed to store exchange rate: %w", err)
	}

	s.cache.Set(code, req.Rate)
	s.LogInfo(ctx, "Exchange rate updated", "currency", code, "rate", req.Rate.String())
	return &rate, nil
}

// ListRates returns all stored rates.
func (s *exchangeRateService) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListExchangeRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	return rates, nil
}

// RefreshCache rebuilds the in-process cache from the persisted table.
// Called at startup and by the background refresher.
func (s *exchangeRateService) RefreshCache(ctx context.Context) error {
	rates, err := s.rateRepo.ListExchangeRates(ctx)
	if err != nil {
		return fmt.Errorf("failed to load exchange rates for cache: %w", err)
	}

	table := make(map[string]decimal.Decimal, len(rates))
	for _, r := range rates {
		table[r.CurrencyCode] = r.Rate
	}
	s.cache.Replace(table)
	return nil
}

// StartRefresher refreshes the cache on a fixed interval until ctx is
// canceled. Ledger operations only ever read the refreshed cache; the
// refresher is the table's single writer.
func StartRefresher(ctx context.Context, svc portssvc.ExchangeRateSvcFacade, interval time.Duration, logger *slog.Logger) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := svc.RefreshCache(ctx); err != nil {
					// Stale rates beat no rates; keep serving the last snapshot.
					logger.Warn("Exchange rate cache refresh failed", slog.String("error", err.Error()))
				}
			}
		}
	}()
}

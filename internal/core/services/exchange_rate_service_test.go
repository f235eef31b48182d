package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/farruhbek/business_accounting_app/internal/apperrors"
	"github.com/farruhbek/business_accounting_app/internal/core/domain"
	portssvc "github.com/farruhbek/business_accounting_app/internal/core/ports/services"
	"github.com/farruhbek/business_accounting_app/internal/core/services"
	"github.com/farruhbek/business_accounting_app/internal/dto"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) UpsertExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) FindExchangeRate(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRepo *MockExchangeRateRepository
	cache    *services.RateCache
	service  portssvc.ExchangeRateSvcFacade
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockExchangeRateRepository)
	suite.cache = services.NewRateCache("UZS")
	suite.service = services.NewExchangeRateService(suite.mockRepo, suite.cache)
}

func (suite *ExchangeRateServiceTestSuite) TestUpsertRate_StoresAndCaches() {
	ctx := context.Background()
	suite.mockRepo.On("UpsertExchangeRate", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.CurrencyCode == "USD" && r.Rate.Equal(decimal.NewFromInt(12500))
	})).Return(nil)

	rate, err := suite.service.UpsertRate(ctx, dto.UpsertExchangeRateRequest{
		CurrencyCode: "usd",
		Rate:         decimal.NewFromInt(12500),
	}, "user-1")

	suite.Require().NoError(err)
	suite.Equal("USD", rate.CurrencyCode)

	cached, ok := suite.cache.Rate("USD")
	suite.Require().True(ok)
	suite.True(cached.Equal(decimal.NewFromInt(12500)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestUpsertRate_RejectsNonPositive() {
	_, err := suite.service.UpsertRate(context.Background(), dto.UpsertExchangeRateRequest{
		CurrencyCode: "USD",
		Rate:         decimal.Zero,
	}, "user-1")
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertExchangeRate")
}

func (suite *ExchangeRateServiceTestSuite) TestUpsertRate_BaseCurrencyFixedAtOne() {
	_, err := suite.service.UpsertRate(context.Background(), dto.UpsertExchangeRateRequest{
		CurrencyCode: "UZS",
		Rate:         decimal.NewFromInt(2),
	}, "user-1")
	suite.ErrorIs(err, apperrors.ErrValidation)

	ctx := context.Background()
	suite.mockRepo.On("UpsertExchangeRate", ctx, mock.Anything).Return(nil)
	_, err = suite.service.UpsertRate(ctx, dto.UpsertExchangeRateRequest{
		CurrencyCode: "UZS",
		Rate:         decimal.NewFromInt(1),
	}, "user-1")
	suite.NoError(err)
}

func (suite *ExchangeRateServiceTestSuite) TestUpsertRate_RepoFailureDoesNotCache() {
	ctx := context.Background()
	suite.mockRepo.On("UpsertExchangeRate", ctx, mock.Anything).Return(errors.New("db down"))

	_, err := suite.service.UpsertRate(ctx, dto.UpsertExchangeRateRequest{
		CurrencyCode: "USD",
		Rate:         decimal.NewFromInt(12500),
	}, "user-1")
	suite.Error(err)

	_, ok := suite.cache.Rate("USD")
	suite.False(ok)
}

func (suite *ExchangeRateServiceTestSuite) TestRefreshCache_ReplacesTable() {
	ctx := context.Background()
	suite.cache.Set("EUR", decimal.NewFromInt(13500))

	suite.mockRepo.On("ListExchangeRates", ctx).Return([]domain.ExchangeRate{
		{CurrencyCode: "USD", Rate: decimal.NewFromInt(12600)},
	}, nil)

	suite.Require().NoError(suite.service.RefreshCache(ctx))

	usd, ok := suite.cache.Rate("USD")
	suite.Require().True(ok)
	suite.True(usd.Equal(decimal.NewFromInt(12600)))

	_, ok = suite.cache.Rate("EUR")
	suite.False(ok, "rates absent from the table drop out of the cache")

	base, ok := suite.cache.Rate("UZS")
	suite.Require().True(ok)
	suite.True(base.Equal(decimal.NewFromInt(1)))
}

func (suite *ExchangeRateServiceTestSuite) TestRefreshCache_FailureKeepsOldTable() {
	ctx := context.Background()
	suite.cache.Set("USD", decimal.NewFromInt(12500))

	suite.mockRepo.On("ListExchangeRates", ctx).Return(nil, errors.New("db down"))

	suite.Error(suite.service.RefreshCache(ctx))

	usd, ok := suite.cache.Rate("USD")
	suite.Require().True(ok)
	suite.True(usd.Equal(decimal.NewFromInt(12500)))
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}

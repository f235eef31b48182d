package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/farruhbek/business_accounting_app/internal/apperrors"
	"github.com/farruhbek/business_accounting_app/internal/core/domain"
	portssvc "github.com/farruhbek/business_accounting_app/internal/core/ports/services"
	"github.com/farruhbek/business_accounting_app/internal/core/services"
	"github.com/farruhbek/business_accounting_app/internal/dto"
)

// fakeAccountRepo holds accounts by ID.
type fakeAccountRepo struct {
	accounts map[string]domain.Account
}

func (r *fakeAccountRepo) SaveAccount(ctx context.Context, account domain.Account) error {
	r.accounts[account.AccountID] = account
	return nil
}

func (r *fakeAccountRepo) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	acc, ok := r.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}

func (r *fakeAccountRepo) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if acc, ok := r.accounts[id]; ok {
			out[id] = acc
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) ListAccounts(ctx context.Context, ownerType domain.OwnerType, limit, offset int) ([]domain.Account, error) {
	var out []domain.Account
	for _, acc := range r.accounts {
		if ownerType != "" && acc.OwnerType != ownerType {
			continue
		}
		out = append(out, acc)
	}
	return out, nil
}

func (r *fakeAccountRepo) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	acc, ok := r.accounts[accountID]
	if !ok {
		return apperrors.ErrNotFound
	}
	acc.IsActive = false
	r.accounts[accountID] = acc
	return nil
}

type UserServiceTestSuite struct {
	suite.Suite
	userRepo    *fakeUserRepo
	accountRepo *fakeAccountRepo
	service     portssvc.UserSvcFacade
	ctx         context.Context
}

func (s *UserServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.userRepo = &fakeUserRepo{users: map[string]domain.User{}}
	s.accountRepo = &fakeAccountRepo{accounts: map[string]domain.Account{}}
	s.service = services.NewUserService(s.userRepo, s.accountRepo)
}

func (s *UserServiceTestSuite) TestCreateUser_CreatesPersonAccount() {
	user, err := s.service.CreateUser(s.ctx, dto.CreateUserRequest{
		Name:         "Aziz",
		Username:     "aziz",
		Password:     "secret-password",
		Role:         "WORKER",
		CurrencyCode: "uzs",
	}, "creator-1")
	s.Require().NoError(err)

	s.Equal(domain.RoleWorker, user.Role)
	s.NotEmpty(user.AccountID)
	s.NotEqual("secret-password", user.PasswordHash)

	account, err := s.accountRepo.FindAccountByID(s.ctx, user.AccountID)
	s.Require().NoError(err)
	s.Equal(domain.OwnerPerson, account.OwnerType)
	s.Equal(user.UserID, account.OwnerID)
	s.Equal("UZS", account.CurrencyCode)
	s.True(account.Balance.IsZero())
}

func (s *UserServiceTestSuite) TestCreateUser_RejectsDuplicateUsername() {
	_, err := s.service.CreateUser(s.ctx, dto.CreateUserRequest{
		Name: "Aziz", Username: "aziz", Password: "secret-password",
		Role: "WORKER", CurrencyCode: "UZS",
	}, "creator-1")
	s.Require().NoError(err)

	_, err = s.service.CreateUser(s.ctx, dto.CreateUserRequest{
		Name: "Other", Username: "aziz", Password: "another-password",
		Role: "CLIENT", CurrencyCode: "UZS",
	}, "creator-1")
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *UserServiceTestSuite) TestAuthenticate() {
	_, err := s.service.CreateUser(s.ctx, dto.CreateUserRequest{
		Name: "Aziz", Username: "aziz", Password: "secret-password",
		Role: "WORKER", CurrencyCode: "UZS",
	}, "creator-1")
	s.Require().NoError(err)

	user, err := s.service.Authenticate(s.ctx, "aziz", "secret-password")
	s.Require().NoError(err)
	s.Equal("aziz", user.Username)

	_, err = s.service.Authenticate(s.ctx, "aziz", "wrong-password")
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, err = s.service.Authenticate(s.ctx, "nobody", "secret-password")
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *UserServiceTestSuite) TestAuthenticate_InactiveUserRejected() {
	created, err := s.service.CreateUser(s.ctx, dto.CreateUserRequest{
		Name: "Aziz", Username: "aziz", Password: "secret-password",
		Role: "WORKER", CurrencyCode: "UZS",
	}, "creator-1")
	s.Require().NoError(err)

	stored := s.userRepo.users[created.UserID]
	stored.IsActive = false
	s.userRepo.users[created.UserID] = stored

	_, err = s.service.Authenticate(s.ctx, "aziz", "secret-password")
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farruhbek/business_accounting_app/internal/apperrors"
	"github.com/farruhbek/business_accounting_app/internal/core/domain"
	portsrepo "github.com/farruhbek/business_accounting_app/internal/core/ports/repositories"
	portssvc "github.com/farruhbek/business_accounting_app/internal/core/ports/services"
	"github.com/farruhbek/business_accounting_app/internal/dto"
	"github.com/farruhbek/business_accounting_app/internal/utils"
)

// userService manages users. Registering a user also creates their person
// ledger account.
type userService struct {
	BaseService
	userRepo    portsrepo.UserRepository
	accountRepo portsrepo.AccountRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepository, accountRepo portsrepo.AccountRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, accountRepo: accountRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser registers a person and their ledger account.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	if _, err := s.userRepo.FindUserByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("%w: username %s", apperrors.ErrDuplicate, req.Username)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	account := domain.Account{
		AccountID:     uuid.NewString(),
		OwnerType:     domain.OwnerPerson,
		Name:          req.Name,
		CurrencyCode:  strings.ToUpper(req.CurrencyCode),
		Balance:       decimal.Zero,
		Debt:          decimal.Zero,
		CreditAdvance: decimal.Zero,
		IsActive:      true,
		AuditFields:   audit,
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: hash,
		Role:         domain.UserRole(strings.ToUpper(req.Role)),
		AccountID:    account.AccountID,
		SectionID:    req.SectionID,
		IsActive:     true,
		AuditFields:  audit,
	}
	account.OwnerID = user.UserID

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to create person account", "username", req.Username)
		return nil, fmt.Errorf("failed to create person account: %w", err)
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", "username", req.Username)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "User created", "user_id", user.UserID, "role", string(user.Role))
	return &user, nil
}

// GetUserByID retrieves a user.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	return user, nil
}

// ListUsers retrieves a page of users, optionally by role.
func (s *userService) ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.User, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	users, err := s.userRepo.ListUsers(ctx, domain.UserRole(strings.ToUpper(params.Role)), limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Authenticate checks credentials and returns the user on success.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrForbidden
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	if !user.IsActive || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrForbidden
	}
	return user, nil
}

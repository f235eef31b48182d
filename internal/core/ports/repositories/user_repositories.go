package repositories

import (
	"context"

	"github.com/farruhbek/business_accounting_app/internal/core/domain"
)

// UserRepository persists users.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context, role domain.UserRole, limit, offset int) ([]domain.User, error)
}

// SectionRepository persists operating sections.
type SectionRepository interface {
	SaveSection(ctx context.Context, section domain.Section) error
	FindSectionByID(ctx context.Context, sectionID string) (*domain.Section, error)
	ListSections(ctx context.Context) ([]domain.Section, error)
}

package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farruhbek/business_accounting_app/internal/apperrors"
	"github.com/farruhbek/business_accounting_app/internal/core/domain"
	portsrepo "github.com/farruhbek/business_accounting_app/internal/core/ports/repositories"
)

const userColumns = `user_id, name, username, password_hash, role, account_id, section_id, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

// SaveUser inserts a new user row.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		user.UserID,
		user.Name,
		user.Username,
		user.PasswordHash,
		user.Role,
		user.AccountID,
		nullString(user.SectionID),
		user.IsActive,
		user.CreatedAt,
		user.CreatedBy,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: username %s", apperrors.ErrDuplicate, user.Username)
		}
		return fmt.Errorf("failed to insert user %s: %w", user.UserID, err)
	}
	return nil
}

// FindUserByID retrieves a user by primary key.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	return r.scanUserRow(r.Pool.QueryRow(ctx, query, userID))
}

// FindUserByUsername retrieves a user by login name.
func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1;`
	return r.scanUserRow(r.Pool.QueryRow(ctx, query, username))
}

// ListUsers retrieves a page of users, optionally filtered by role.
func (r *PgxUserRepository) ListUsers(ctx context.Context, role domain.UserRole, limit, offset int) ([]domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE ($1 = '' OR role = $1)
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, string(role), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading user rows: %w", err)
	}
	return users, nil
}

func (r *PgxUserRepository) scanUserRow(row pgx.Row) (*domain.User, error) {
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		user      domain.User
		sectionID sql.NullString
	)
	err := row.Scan(
		&user.UserID,
		&user.Name,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.AccountID,
		&sectionID,
		&user.IsActive,
		&user.CreatedAt,
		&user.CreatedBy,
		&user.LastUpdatedAt,
		&user.LastUpdatedBy,
	)
	if err != nil {
		return domain.User{}, err
	}
	user.SectionID = sectionID.String
	return user, nil
}

type PgxSectionRepository struct {
	BaseRepository
}

func newPgxSectionRepository(pool *pgxpool.Pool) portsrepo.SectionRepository {
	return &PgxSectionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SectionRepository = (*PgxSectionRepository)(nil)

// SaveSection inserts a new section row.
func (r *PgxSectionRepository) SaveSection(ctx context.Context, section domain.Section) error {
	query := `
		INSERT INTO sections (section_id, name, kind, account_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		section.SectionID,
		section.Name,
		section.Kind,
		section.AccountID,
		section.CreatedAt,
		section.CreatedBy,
		section.LastUpdatedAt,
		section.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: section %s", apperrors.ErrDuplicate, section.Name)
		}
		return fmt.Errorf("failed to insert section %s: %w", section.SectionID, err)
	}
	return nil
}

// FindSectionByID retrieves a section by primary key.
func (r *PgxSectionRepository) FindSectionByID(ctx context.Context, sectionID string) (*domain.Section, error) {
	query := `
		SELECT section_id, name, kind, account_id, created_at, created_by, last_updated_at, last_updated_by
		FROM sections
		WHERE section_id = $1;
	`
	var section domain.Section
	err := r.Pool.QueryRow(ctx, query, sectionID).Scan(
		&section.SectionID,
		&section.Name,
		&section.Kind,
		&section.AccountID,
		&section.CreatedAt,
		&section.CreatedBy,
		&section.LastUpdatedAt,
		&section.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find section by ID %s: %w", sectionID, err)
	}
	return &section, nil
}

// ListSections retrieves every section.
func (r *PgxSectionRepository) ListSections(ctx context.Context) ([]domain.Section, error) {
	query := `
		SELECT section_id, name, kind, account_id, created_at, created_by, last_updated_at, last_updated_by
		FROM sections
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	defer rows.Close()

	var sections []domain.Section
	for rows.Next() {
		var section domain.Section
		if err := rows.Scan(
			&section.SectionID,
			&section.Name,
			&section.Kind,
			&section.AccountID,
			&section.CreatedAt,
			&section.CreatedBy,
			&section.LastUpdatedAt,
			&section.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan section row: %w", err)
		}
		sections = append(sections, section)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading section rows: %w", err)
	}
	return sections, nil
}

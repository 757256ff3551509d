package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/gracebooks/api/internal/domain"
)

// Failure classes shared by every storage backend. Adapters translate their
// native errors into these before returning; callers match with errors.Is.
// Wrapped values carry the offending id, code, or driver detail.
var (
	ErrNotFound      = errors.New("account not found")
	ErrDuplicateCode = errors.New("account code already exists")
	ErrInvalidData   = errors.New("invalid account data")
	ErrDatabase      = errors.New("database error")
)

// AccountRepository is the storage contract for the chart of accounts.
// Implementations must be safe for concurrent use and must never leak
// backend-specific error types across this boundary.
type AccountRepository interface {
	// Create persists a new account built from req. Fails with
	// ErrDuplicateCode when the code is already taken, including by a
	// soft-deleted account.
	Create(ctx context.Context, req domain.CreateAccountRequest) (*domain.Account, error)

	// FindByID returns the account with the given id, or (nil, nil) when
	// none exists. Soft-deleted accounts are still returned.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)

	// FindByCode returns the account with the given code, or (nil, nil).
	FindByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAll returns every account, ascending by display order.
	FindAll(ctx context.Context) ([]domain.Account, error)

	// FindByType returns the accounts of the given type, ascending by
	// display order.
	FindByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error)

	// Update applies the non-nil fields of req and refreshes UpdatedAt.
	// Fails with ErrNotFound when the id has no record.
	Update(ctx context.Context, id uuid.UUID, req domain.UpdateAccountRequest) (*domain.Account, error)

	// SoftDelete deactivates the account without removing it; the code
	// stays reserved. Fails with ErrNotFound when the id has no record.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// ExistsByCode reports whether any account, active or not, holds the
	// code.
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

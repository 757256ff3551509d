package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gracebooks/api/internal/domain"
)

// MemoryRepository keeps the chart of accounts in process memory. It backs
// local development and tests when no database is configured, and mirrors the
// Postgres adapter's semantics: codes stay unique across soft-deleted rows and
// listings come back ordered by display order.
type MemoryRepository struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]domain.Account
	order    []uuid.UUID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{accounts: make(map[uuid.UUID]domain.Account)}
}

// clone copies an account so callers never share pointers with the store.
func clone(a domain.Account) domain.Account {
	out := a
	if a.Description != nil {
		d := *a.Description
		out.Description = &d
	}
	return out
}

func (r *MemoryRepository) codeTaken(code string) bool {
	for _, a := range r.accounts {
		if a.Code == code {
			return true
		}
	}
	return false
}

// snapshot collects matching accounts ordered by display order, falling back
// to insertion order on ties. Callers must hold at least a read lock.
func (r *MemoryRepository) snapshot(match func(domain.Account) bool) []domain.Account {
	out := make([]domain.Account, 0, len(r.order))
	for _, id := range r.order {
		a := r.accounts[id]
		if match != nil && !match(a) {
			continue
		}
		out = append(out, clone(a))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DisplayOrder < out[j].DisplayOrder
	})
	return out
}

func (r *MemoryRepository) Create(ctx context.Context, req domain.CreateAccountRequest) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.codeTaken(req.Code) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, req.Code)
	}

	account := domain.NewAccount(req)
	r.accounts[account.ID] = account
	r.order = append(r.order, account.ID)

	out := clone(account)
	return &out, nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	out := clone(a)
	return &out, nil
}

func (r *MemoryRepository) FindByCode(ctx context.Context, code string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if a := r.accounts[id]; a.Code == code {
			out := clone(a)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) FindAll(ctx context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.snapshot(nil), nil
}

func (r *MemoryRepository) FindByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.snapshot(func(a domain.Account) bool {
		return a.Type == accountType
	}), nil
}

func (r *MemoryRepository) Update(ctx context.Context, id uuid.UUID, req domain.UpdateAccountRequest) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.Description != nil {
		d := *req.Description
		a.Description = &d
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}
	if req.DisplayOrder != nil {
		a.DisplayOrder = *req.DisplayOrder
	}
	a.UpdatedAt = time.Now().UTC()
	r.accounts[id] = a

	out := clone(a)
	return &out, nil
}

func (r *MemoryRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	a.IsActive = false
	a.UpdatedAt = time.Now().UTC()
	r.accounts[id] = a
	return nil
}

func (r *MemoryRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.codeTaken(code), nil
}

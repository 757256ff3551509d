package repository

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/gracebooks/api/internal/domain"
)

func strPtr(s string) *string { return &s }
func i32Ptr(v int32) *int32   { return &v }
func boolPtr(b bool) *bool    { return &b }

func mustCreate(t *testing.T, repo *MemoryRepository, code, name string, category domain.AccountCategory, order int32) domain.Account {
	t.Helper()
	account, err := repo.Create(context.Background(), domain.CreateAccountRequest{
		Code:         code,
		Name:         name,
		Category:     category,
		DisplayOrder: i32Ptr(order),
	})
	if err != nil {
		t.Fatalf("Create(%s) error = %v", code, err)
	}
	return *account
}

func TestMemoryCreateAndFindByID(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.CreateAccountRequest{
		Code:        "101",
		Name:        "Cash",
		Category:    domain.CategoryCash,
		Description: strPtr("Petty cash on hand"),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("Create() returned zero id")
	}
	if created.Type != domain.AccountTypeAsset {
		t.Errorf("Type = %q, want %q", created.Type, domain.AccountTypeAsset)
	}
	if !created.IsActive {
		t.Error("new account should be active")
	}

	found, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found == nil {
		t.Fatal("FindByID() = nil, want account")
	}
	if found.Code != "101" || found.Name != "Cash" {
		t.Errorf("FindByID() = %s %q, want 101 %q", found.Code, found.Name, "Cash")
	}
	if found.Description == nil || *found.Description != "Petty cash on hand" {
		t.Errorf("Description = %v, want %q", found.Description, "Petty cash on hand")
	}
}

func TestMemoryFindByIDMissing(t *testing.T) {
	repo := NewMemoryRepository()

	found, err := repo.FindByID(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found != nil {
		t.Errorf("FindByID() = %+v, want nil", found)
	}
}

func TestMemoryCreateDuplicateCode(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	mustCreate(t, repo, "101", "Cash", domain.CategoryCash, 1)

	_, err := repo.Create(ctx, domain.CreateAccountRequest{
		Code:     "101",
		Name:     "Main Bank",
		Category: domain.CategoryBankDeposit,
	})
	if !errors.Is(err, ErrDuplicateCode) {
		t.Fatalf("Create() error = %v, want ErrDuplicateCode", err)
	}
	if !strings.Contains(err.Error(), "101") {
		t.Errorf("error %q should name the code", err)
	}
}

func TestMemoryFindByCode(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	mustCreate(t, repo, "401", "Tithes", domain.CategoryTitheOffering, 1)

	found, err := repo.FindByCode(ctx, "401")
	if err != nil {
		t.Fatalf("FindByCode() error = %v", err)
	}
	if found == nil || found.Name != "Tithes" {
		t.Fatalf("FindByCode(401) = %+v, want Tithes", found)
	}

	missing, err := repo.FindByCode(ctx, "999")
	if err != nil {
		t.Fatalf("FindByCode() error = %v", err)
	}
	if missing != nil {
		t.Errorf("FindByCode(999) = %+v, want nil", missing)
	}
}

func TestMemoryFindAllOrdering(t *testing.T) {
	repo := NewMemoryRepository()
	mustCreate(t, repo, "301", "Capital", domain.CategoryCapital, 30)
	mustCreate(t, repo, "101", "Cash", domain.CategoryCash, 10)
	mustCreate(t, repo, "201", "Payables", domain.CategoryAccountsPayable, 20)
	// Same display order as Cash; insertion order breaks the tie.
	mustCreate(t, repo, "102", "Bank", domain.CategoryBankDeposit, 10)

	accounts, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}

	want := []string{"101", "102", "201", "301"}
	if len(accounts) != len(want) {
		t.Fatalf("FindAll() returned %d accounts, want %d", len(accounts), len(want))
	}
	for i, code := range want {
		if accounts[i].Code != code {
			t.Errorf("accounts[%d].Code = %s, want %s", i, accounts[i].Code, code)
		}
	}
}

func TestMemoryFindByType(t *testing.T) {
	repo := NewMemoryRepository()
	mustCreate(t, repo, "101", "Cash", domain.CategoryCash, 1)
	mustCreate(t, repo, "102", "Bank", domain.CategoryBankDeposit, 2)
	mustCreate(t, repo, "401", "Tithes", domain.CategoryTitheOffering, 3)

	assets, err := repo.FindByType(context.Background(), domain.AccountTypeAsset)
	if err != nil {
		t.Fatalf("FindByType() error = %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("FindByType(asset) returned %d accounts, want 2", len(assets))
	}
	for _, a := range assets {
		if a.Type != domain.AccountTypeAsset {
			t.Errorf("account %s has type %q, want asset", a.Code, a.Type)
		}
	}

	equity, err := repo.FindByType(context.Background(), domain.AccountTypeEquity)
	if err != nil {
		t.Fatalf("FindByType() error = %v", err)
	}
	if len(equity) != 0 {
		t.Errorf("FindByType(equity) returned %d accounts, want 0", len(equity))
	}
}

func TestMemoryUpdate(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	created := mustCreate(t, repo, "101", "Cash", domain.CategoryCash, 1)

	updated, err := repo.Update(ctx, created.ID, domain.UpdateAccountRequest{
		Name: strPtr("Cash on Hand"),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "Cash on Hand" {
		t.Errorf("Name = %q, want %q", updated.Name, "Cash on Hand")
	}
	if updated.Code != "101" || updated.Category != domain.CategoryCash {
		t.Errorf("Update() changed immutable fields: %s %s", updated.Code, updated.Category)
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Error("UpdatedAt went backwards")
	}

	updated, err = repo.Update(ctx, created.ID, domain.UpdateAccountRequest{
		Description:  strPtr("Physical cash"),
		IsActive:     boolPtr(false),
		DisplayOrder: i32Ptr(9),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "Cash on Hand" {
		t.Errorf("omitted name overwritten: %q", updated.Name)
	}
	if updated.Description == nil || *updated.Description != "Physical cash" {
		t.Errorf("Description = %v, want %q", updated.Description, "Physical cash")
	}
	if updated.IsActive {
		t.Error("IsActive should be false")
	}
	if updated.DisplayOrder != 9 {
		t.Errorf("DisplayOrder = %d, want 9", updated.DisplayOrder)
	}
}

func TestMemoryUpdateMissing(t *testing.T) {
	repo := NewMemoryRepository()

	_, err := repo.Update(context.Background(), uuid.New(), domain.UpdateAccountRequest{
		Name: strPtr("Anything"),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestMemorySoftDelete(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	created := mustCreate(t, repo, "101", "Cash", domain.CategoryCash, 1)

	if err := repo.SoftDelete(ctx, created.ID); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}

	found, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found == nil {
		t.Fatal("soft-deleted account should still be findable")
	}
	if found.IsActive {
		t.Error("soft-deleted account should be inactive")
	}

	// The code stays reserved after deactivation.
	exists, err := repo.ExistsByCode(ctx, "101")
	if err != nil {
		t.Fatalf("ExistsByCode() error = %v", err)
	}
	if !exists {
		t.Error("ExistsByCode(101) = false after soft delete, want true")
	}
	_, err = repo.Create(ctx, domain.CreateAccountRequest{
		Code:     "101",
		Name:     "Cash Again",
		Category: domain.CategoryCash,
	})
	if !errors.Is(err, ErrDuplicateCode) {
		t.Fatalf("Create() after soft delete error = %v, want ErrDuplicateCode", err)
	}
}

func TestMemorySoftDeleteMissing(t *testing.T) {
	repo := NewMemoryRepository()

	err := repo.SoftDelete(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("SoftDelete() error = %v, want ErrNotFound", err)
	}
}

func TestMemoryExistsByCode(t *testing.T) {
	repo := NewMemoryRepository()
	mustCreate(t, repo, "501", "Salaries", domain.CategoryPersonnelExpense, 1)

	exists, err := repo.ExistsByCode(context.Background(), "501")
	if err != nil {
		t.Fatalf("ExistsByCode() error = %v", err)
	}
	if !exists {
		t.Error("ExistsByCode(501) = false, want true")
	}

	exists, err = repo.ExistsByCode(context.Background(), "502")
	if err != nil {
		t.Fatalf("ExistsByCode() error = %v", err)
	}
	if exists {
		t.Error("ExistsByCode(502) = true, want false")
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.CreateAccountRequest{
		Code:        "101",
		Name:        "Cash",
		Category:    domain.CategoryCash,
		Description: strPtr("original"),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Mutating the returned copy must not touch the stored account.
	*created.Description = "mutated"
	created.Name = "Mutated"

	found, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Name != "Cash" {
		t.Errorf("stored Name = %q, want %q", found.Name, "Cash")
	}
	if *found.Description != "original" {
		t.Errorf("stored Description = %q, want %q", *found.Description, "original")
	}
}

func TestMemoryConcurrentCreateSameCode(t *testing.T) {
	repo := NewMemoryRepository()
	const workers = 16

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(context.Background(), domain.CreateAccountRequest{
				Code:     "101",
				Name:     "Cash",
				Category: domain.CategoryCash,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var created, duplicates int
	for err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrDuplicateCode):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if created != 1 {
		t.Errorf("created = %d, want exactly 1", created)
	}
	if duplicates != workers-1 {
		t.Errorf("duplicates = %d, want %d", duplicates, workers-1)
	}
}

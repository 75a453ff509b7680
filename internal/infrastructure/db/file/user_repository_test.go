package file

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/minauth/auth-api/internal/core/domain"
)

func newTestRepo(t *testing.T) (*UserRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	repo, err := NewUserRepository(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return repo, path
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo, _ := newTestRepo(t)

	created, err := repo.Create(context.Background(), &domain.Account{
		Email:        "a@x.com",
		DisplayName:  "Ana",
		PasswordHash: "$2a$10$hash",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected assigned ID")
	}
	if created.CreatedAt.IsZero() {
		t.Fatalf("expected assigned CreatedAt")
	}

	found, err := repo.FindByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("FindByEmail returned error: %v", err)
	}
	if found.ID != created.ID || found.PasswordHash != "$2a$10$hash" {
		t.Fatalf("unexpected account: %+v", found)
	}
}

func TestUserRepository_FindMissing(t *testing.T) {
	repo, _ := newTestRepo(t)

	if _, err := repo.FindByEmail(context.Background(), "ghost@x.com"); err != domain.ErrAccountNotFound {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo, _ := newTestRepo(t)

	if _, err := repo.Create(context.Background(), &domain.Account{Email: "a@x.com", PasswordHash: "h"}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := repo.Create(context.Background(), &domain.Account{Email: "a@x.com", PasswordHash: "h2"}); err != domain.ErrAccountExists {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestUserRepository_SurvivesReopen(t *testing.T) {
	repo, path := newTestRepo(t)

	created, err := repo.Create(context.Background(), &domain.Account{
		Email:        "a@x.com",
		DisplayName:  "Ana",
		PasswordHash: "$2a$10$hash",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	reopened, err := NewUserRepository(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	found, err := reopened.FindByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("FindByEmail after reopen: %v", err)
	}
	if found.ID != created.ID || found.DisplayName != "Ana" || !found.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("record changed across reopen: %+v vs %+v", found, created)
	}
}

func TestUserRepository_ConcurrentCreateSameEmail(t *testing.T) {
	repo, _ := newTestRepo(t)

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Create(context.Background(), &domain.Account{Email: "race@x.com", PasswordHash: "h"})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else if err != domain.ErrAccountExists {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one successful create, got %d", succeeded)
	}
}

func TestUserRepository_Ping(t *testing.T) {
	repo, _ := newTestRepo(t)
	if err := repo.Ping(context.Background()); err != nil {
		t.Fatalf("Ping returned error: %v", err)
	}
}

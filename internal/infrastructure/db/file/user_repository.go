// Package file implements the user store on a single JSON file.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/minauth/auth-api/internal/core/domain"
)

// UserRepository persists accounts in one JSON document keyed by normalized
// email. All records are held in memory; every successful Create rewrites
// the file atomically (write to a temp file, fsync, rename) so a crash never
// leaves a partially-written store behind.
type UserRepository struct {
	path string

	mu       sync.RWMutex
	accounts map[string]domain.Account
}

type fileRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name,omitempty"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUserRepository opens (or initializes) the store at path and loads all
// existing records.
func NewUserRepository(path string) (*UserRepository, error) {
	r := &UserRepository{
		path:     path,
		accounts: make(map[string]domain.Account),
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

// FindByEmail returns the account stored under the normalized email.
func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &account, nil
}

// Create inserts a new account. The write lock covers the whole
// check-then-insert-then-persist sequence, so two concurrent registrations
// for the same email cannot both succeed.
func (r *UserRepository) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.Email]; exists {
		return nil, domain.ErrAccountExists
	}

	stored := *account
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now().UTC()

	r.accounts[stored.Email] = stored
	if err := r.persist(); err != nil {
		// Roll back the in-memory insert so reads keep matching disk.
		delete(r.accounts, stored.Email)
		return nil, fmt.Errorf("persist user store: %w", err)
	}
	return &stored, nil
}

// Ping reports whether the store's directory is reachable. Used by the
// readiness probe.
func (r *UserRepository) Ping(_ context.Context) error {
	dir := filepath.Dir(r.path)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("user store directory: %w", err)
	}
	return nil
}

func (r *UserRepository) load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read user store: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var records []fileRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("decode user store: %w", err)
	}
	for _, rec := range records {
		r.accounts[rec.Email] = domain.Account{
			ID:           rec.ID,
			Email:        rec.Email,
			DisplayName:  rec.DisplayName,
			PasswordHash: rec.PasswordHash,
			CreatedAt:    rec.CreatedAt,
		}
	}
	return nil
}

// persist writes the full record set. Caller holds the write lock.
func (r *UserRepository) persist() error {
	records := make([]fileRecord, 0, len(r.accounts))
	for _, a := range r.accounts {
		records = append(records, fileRecord{
			ID:           a.ID,
			Email:        a.Email,
			DisplayName:  a.DisplayName,
			PasswordHash: a.PasswordHash,
			CreatedAt:    a.CreatedAt,
		})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Email < records[j].Email })

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), r.path)
}

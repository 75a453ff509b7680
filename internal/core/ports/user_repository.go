package ports

import (
	"context"

	"github.com/minauth/auth-api/internal/core/domain"
)

// UserRepository defines the interface for durable account persistence.
// Implementations must make Create's check-then-insert atomic with respect
// to concurrent callers: exactly one of N concurrent creates for the same
// normalized email may succeed, the rest receive domain.ErrAccountExists.
type UserRepository interface {
	// FindByEmail returns the account stored under the normalized email, or
	// domain.ErrAccountNotFound.
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	// Create persists a new account, assigning its ID and CreatedAt. The
	// record is durable before Create returns.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
}

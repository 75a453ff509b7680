package ports

import (
	"context"
	"time"

	"github.com/minauth/auth-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password, displayName string) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (string, time.Time, *domain.Account, error)
	ResolveCurrentUser(ctx context.Context, token string) (*domain.Account, error)
}

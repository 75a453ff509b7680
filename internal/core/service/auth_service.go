package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/minauth/auth-api/internal/core/domain"
	"github.com/minauth/auth-api/internal/core/ports"
)

const (
	DefaultPasswordMin = 6
	DefaultPasswordMax = 72
)

// AuthService implements registration, login and token resolution.
type AuthService struct {
	repo        ports.UserRepository
	hasher      ports.PasswordHasher
	issuer      ports.TokenIssuer
	audit       ports.AuditSink
	passwordMin int
	passwordMax int
}

// NewAuthService wires the service. Non-positive password bounds fall back
// to the defaults. A nil audit sink disables auditing.
func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, audit ports.AuditSink, passwordMin, passwordMax int) *AuthService {
	if passwordMin <= 0 {
		passwordMin = DefaultPasswordMin
	}
	if passwordMax <= 0 {
		passwordMax = DefaultPasswordMax
	}
	if audit == nil {
		audit = ports.NopAuditSink{}
	}
	return &AuthService{
		repo:        repo,
		hasher:      hasher,
		issuer:      issuer,
		audit:       audit,
		passwordMin: passwordMin,
		passwordMax: passwordMax,
	}
}

// Register creates a new account. The caller receives the stored account;
// transport layers must render it through Account.Public.
func (s *AuthService) Register(ctx context.Context, email, password, displayName string) (*domain.Account, error) {
	email = domain.NormalizeEmail(email)
	if !validEmail(email) {
		return nil, domain.ErrInvalidInput
	}
	if len(password) < s.passwordMin || len(password) > s.passwordMax {
		return nil, domain.ErrInvalidInput
	}

	// Cheap pre-check; the store's atomic Create is the real guard against
	// a concurrent registration slipping in between.
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrAccountExists
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Account{
		Email:        email,
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAccountExists) {
			return nil, domain.ErrAccountExists
		}
		return nil, err
	}

	s.audit.Enqueue(domain.AuditEvent{Type: domain.AuditRegistered, Email: created.Email, At: time.Now().UTC()})
	return created, nil
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password return the same error value so callers cannot probe which
// emails are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, *domain.Account, error) {
	email = domain.NormalizeEmail(email)

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.audit.Enqueue(domain.AuditEvent{Type: domain.AuditLoginFailed, Email: email, At: time.Now().UTC()})
			return "", time.Time{}, nil, domain.ErrInvalidCredentials
		}
		return "", time.Time{}, nil, err
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		s.audit.Enqueue(domain.AuditEvent{Type: domain.AuditLoginFailed, Email: email, At: time.Now().UTC()})
		return "", time.Time{}, nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.issuer.Issue(account.Email)
	if err != nil {
		return "", time.Time{}, nil, err
	}

	s.audit.Enqueue(domain.AuditEvent{Type: domain.AuditLoginSucceeded, Email: email, At: time.Now().UTC()})
	return token, expiresAt, account, nil
}

// ResolveCurrentUser verifies a bearer token and re-fetches the account for
// its subject. A valid token does not imply the account still exists.
func (s *AuthService) ResolveCurrentUser(ctx context.Context, token string) (*domain.Account, error) {
	subject, err := s.issuer.Verify(token)
	if err != nil {
		return nil, err
	}

	account, err := s.repo.FindByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// validEmail checks the shape of an already-normalized address. The address
// must parse on its own and carry no display name.
func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

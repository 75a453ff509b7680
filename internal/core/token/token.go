// Package token issues and verifies signed, time-limited bearer tokens.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/minauth/auth-api/internal/core/domain"
)

// DefaultLifetime applies when no token TTL is configured.
const DefaultLifetime = 30 * time.Minute

// JWTIssuer signs HS256 JWTs carrying {sub, iat, exp}. Verification is
// stateless: any process holding the same secret can verify any token.
type JWTIssuer struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewJWTIssuer creates an issuer with the given signing secret and token
// lifetime. A non-positive lifetime falls back to DefaultLifetime.
func NewJWTIssuer(secret string, lifetime time.Duration) *JWTIssuer {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	return &JWTIssuer{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}
}

// WithClock overrides the issuer's clock. Intended for tests.
func (i *JWTIssuer) WithClock(now func() time.Time) *JWTIssuer {
	i.now = now
	return i
}

// Issue builds and signs claims for subject. The expiry is fixed at issuance
// to now + lifetime.
func (i *JWTIssuer) Issue(subject string) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, domain.ErrInvalidInput
	}

	now := i.now().UTC()
	expiresAt := now.Add(i.lifetime)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify recomputes the signature, checks expiry against the local clock and
// returns the subject claim.
func (i *JWTIssuer) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.Subject, nil
}

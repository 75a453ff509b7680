package ports

import "time"

// PasswordHasher turns a plaintext secret into a stored hash and checks a
// plaintext against a stored hash.
type PasswordHasher interface {
	// Hash produces a salted one-way digest. Fails with
	// domain.ErrInvalidInput on empty or over-long input.
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches the stored hash. Any
	// mismatch, including a malformed hash, yields false, never an error.
	Verify(plaintext, hash string) bool
}

// TokenIssuer mints and verifies signed, time-limited bearer tokens.
// Verification is stateless: any instance holding the same secret can verify
// tokens issued by any other.
type TokenIssuer interface {
	// Issue signs claims {subject, issuedAt=now, expiresAt=now+lifetime}
	// and returns the compact token together with its expiry.
	Issue(subject string) (string, time.Time, error)
	// Verify checks signature and expiry and returns the subject claim.
	// Fails with domain.ErrTokenExpired or domain.ErrTokenInvalid.
	Verify(token string) (string, error)
}

// Package crypto implements credential hashing backed by bcrypt.
package crypto

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/minauth/auth-api/internal/core/domain"
)

// DefaultCost is tuned for roughly 100ms per hash on commodity hardware.
const DefaultCost = 12

// maxPasswordBytes is bcrypt's hard input limit.
const maxPasswordBytes = 72

// BcryptHasher hashes passwords with bcrypt at a fixed cost. The cost and
// salt are embedded in the output, so Verify needs no configuration and
// stored hashes survive future cost changes.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given cost factor. Costs outside
// bcrypt's supported range fall back to DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash produces a salted one-way digest of plaintext.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" || len(plaintext) > maxPasswordBytes {
		return "", domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored hash. A malformed hash
// is a mismatch, not an error.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

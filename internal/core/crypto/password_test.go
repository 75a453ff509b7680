package crypto

import (
	"strings"
	"testing"

	"github.com/minauth/auth-api/internal/core/domain"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(4) // min cost keeps the test fast

	hash, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "s3cret" {
		t.Fatalf("hash equals plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected self-describing bcrypt encoding, got %q", hash)
	}
	if !h.Verify("s3cret", hash) {
		t.Fatalf("Verify rejected the correct password")
	}
	if h.Verify("wrong", hash) {
		t.Fatalf("Verify accepted a wrong password")
	}
}

func TestBcryptHasher_DistinctSalts(t *testing.T) {
	h := NewBcryptHasher(4)

	h1, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("first Hash: %v", err)
	}
	h2, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("second Hash: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same password are identical; salts not random")
	}
	if !h.Verify("same-password", h1) || !h.Verify("same-password", h2) {
		t.Fatalf("both hashes should verify against the original password")
	}
}

func TestBcryptHasher_InvalidInput(t *testing.T) {
	h := NewBcryptHasher(4)

	if _, err := h.Hash(""); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for empty password, got %v", err)
	}
	if _, err := h.Hash(strings.Repeat("x", 73)); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for over-long password, got %v", err)
	}
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := NewBcryptHasher(4)

	if h.Verify("anything", "not-a-bcrypt-hash") {
		t.Fatalf("Verify accepted a malformed hash")
	}
	if h.Verify("anything", "") {
		t.Fatalf("Verify accepted an empty hash")
	}
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	h := NewBcryptHasher(99)
	if h.cost != DefaultCost {
		t.Fatalf("expected fallback to DefaultCost, got %d", h.cost)
	}
}

package security

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashCompare(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("Sup3rSecret!")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "Sup3rSecret!" {
		t.Fatalf("hash equals the plaintext")
	}

	if err := h.Compare(hash, "Sup3rSecret!"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if err := h.Compare(hash, "wrong"); err == nil {
		t.Fatalf("expected mismatch")
	}
}

func TestBcryptHasher_DefaultCost(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(0)
	if h.cost != bcrypt.DefaultCost {
		t.Fatalf("cost = %d, want default %d", h.cost, bcrypt.DefaultCost)
	}
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)

	h1, err := h.Hash("Sup3rSecret!")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	h2, err := h.Hash("Sup3rSecret!")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected different salts to yield different hashes")
	}
}

package crypto

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("pass123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if !h.Compare(hash, "pass123") {
		t.Fatalf("hash does not match its password")
	}
	if h.Compare(hash, "wrong") {
		t.Fatalf("hash matched the wrong password")
	}

	other, _ := h.Hash("pass123")
	if other == hash {
		t.Fatalf("expected a fresh salt per hash")
	}
}

func TestNewBcryptHasher_DefaultsOutOfRangeCost(t *testing.T) {
	if h := NewBcryptHasher(0); h.cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", h.cost)
	}
}

package hash

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashing(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hashed, err := h.Hash("correct-horse")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if hashed == "correct-horse" {
		t.Fatalf("expected hash to differ from plaintext")
	}
	if !h.Verify("correct-horse", hashed) {
		t.Fatalf("expected password to match")
	}
	if h.Verify("battery-staple", hashed) {
		t.Fatalf("expected password mismatch")
	}
}

func TestPasswordHashingIsSalted(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	second, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct hashes for repeated calls")
	}
}

func TestHasherCost(t *testing.T) {
	h := NewBcryptHasher(0)
	hashed, err := h.Hash("password1")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hashed))
	if err != nil {
		t.Fatalf("cost error: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost %d, got %d", bcrypt.DefaultCost, cost)
	}

	if _, err := h.Hash(""); err == nil {
		t.Fatalf("expected empty password to be refused")
	}
}

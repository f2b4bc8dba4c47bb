package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("Secret123!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "Secret123!" {
		t.Fatalf("hash equals plaintext")
	}

	ok, err := h.Verify("Secret123!", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected hash to verify against original plaintext")
	}
}

func TestHasher_FreshSaltPerHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("same-input")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := h.Hash("same-input")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct encodings for the same plaintext")
	}

	for _, hash := range []string{first, second} {
		ok, err := h.Verify("same-input", hash)
		if err != nil || !ok {
			t.Fatalf("hash %q failed to verify: ok=%v err=%v", hash, ok, err)
		}
	}
}

func TestHasher_WrongPassword(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("right")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	ok, err := h.Verify("wrong", hash)
	if err != nil {
		t.Fatalf("mismatch must not be an error, got %v", err)
	}
	if ok {
		t.Fatalf("wrong password verified")
	}
}

func TestHasher_MalformedHashIsHardError(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	ok, err := h.Verify("anything", "not-a-bcrypt-hash")
	if err == nil {
		t.Fatalf("expected error for unreadable hash format")
	}
	if ok {
		t.Fatalf("malformed hash verified")
	}
}

func TestNewHasher_CostClamping(t *testing.T) {
	if got := NewHasher(0).cost; got != DefaultCost {
		t.Fatalf("expected default cost %d, got %d", DefaultCost, got)
	}
	if got := NewHasher(bcrypt.MaxCost + 5).cost; got != bcrypt.MaxCost {
		t.Fatalf("expected cost clamped to %d, got %d", bcrypt.MaxCost, got)
	}
}

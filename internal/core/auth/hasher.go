package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 10

// Hasher derives and verifies bcrypt password hashes with a fixed cost. The
// salt is generated fresh inside bcrypt on every Hash call and embedded in
// the encoded output, so rehashing the same plaintext yields a different
// string each time.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given cost, clamped to the bcrypt
// supported range. Cost <= 0 selects DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost <= 0 {
		cost = DefaultCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt encoding of plaintext: algorithm, cost, salt, and
// digest in a single self-describing string.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify compares plaintext against an encoded hash in constant time. A
// mismatch is (false, nil). A hash bcrypt cannot parse is a hard error so
// that corrupt stored hashes surface instead of masquerading as a wrong
// password.
func (h *Hasher) Verify(plaintext, passwordHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("verify password: %w", err)
	}
}

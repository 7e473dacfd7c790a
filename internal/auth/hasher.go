package auth

import (
	"errors" // Sentinel errors
	"fmt"    // Error wrapping
	"sync"   // One-time dummy hash

	"golang.org/x/crypto/bcrypt" // Password hashing
)

var ErrFailedToHashPassword = errors.New("failed to hash password") // Returned when bcrypt fails

// Hasher hashes and verifies passwords with bcrypt
type Hasher struct {
	cost      int       // bcrypt cost
	dummyOnce sync.Once // Guards dummyHash
	dummyHash []byte    // Compared against for unknown users
}

// NewHasher returns a Hasher using cost, or bcrypt.DefaultCost when cost is out of range
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost // Fall back to the library default
	}
	return &Hasher{cost: cost}
}

// HashPassword returns the bcrypt hash of password
func (h *Hasher) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost) // Hash the password
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToHashPassword, err)
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether password matches hash. An empty hash is compared
// against a throwaway hash and always fails, so unknown users cost a full comparison.
func (h *Hasher) CheckPasswordHash(password, hash string) bool {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword(h.dummy(), []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (h *Hasher) dummy() []byte {
	h.dummyOnce.Do(func() {
		h.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("currency-wizard-dummy"), h.cost)
	})
	return h.dummyHash
}

// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"doorman/internal/domain/service"
	"doorman/internal/errors"
)

// DefaultCost mirrors the work factor the legacy service ran with: high
// enough that a single hash costs on the order of a second on commodity
// hardware, which is the deliberate brute-force/latency trade-off.
const DefaultCost = 12

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher is the constructor for bcryptHasher with the default work factor.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher() service.PasswordHasher {
	return NewBcryptHasherWithCost(DefaultCost)
}

// NewBcryptHasherWithCost builds a hasher with an explicit work factor.
// Out-of-range values fall back to the default; tests use a low cost to
// keep hashing cheap.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}

	return &bcryptHasher{cost: cost}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "bcrypt hash failed")
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash. The comparison
// inside bcrypt is constant-time with respect to the hash content. A
// mismatch is reported as (false, nil); a hash that bcrypt cannot parse at
// all is reported as service.ErrCorruptCredential so callers never confuse
// a corrupt record with a wrong password.
func (h *bcryptHasher) Check(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}

	return false, errors.Wrap(service.ErrCorruptCredential, err.Error())
}

// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "errors"

// ErrCorruptCredential is returned by Check when the stored hash is
// malformed. A corrupt hash is neither a match nor a clean mismatch; the
// caller logs the real cause and reports a generic credential failure to
// the client.
var ErrCorruptCredential = errors.New("stored credential hash is corrupt")

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a stored hash. A mismatch is
	// (false, nil); a malformed stored hash is (false, ErrCorruptCredential).
	Check(password, hash string) (bool, error)
}

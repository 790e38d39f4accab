// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// User is the core identity record: a unique username plus the salted
// hash of the password used to prove ownership of that name.
type User struct {
	ID           uint64    // System-assigned, sequential identifier.
	Username     string    // Unique login name. Uniqueness is enforced by the storage layer.
	PasswordHash string    // Output of the credential hasher. The plaintext is never stored.
	CreatedAt    time.Time // Timestamp of when this account was registered.
}

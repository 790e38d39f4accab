// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// Session payload keys carried by every authenticated session.
const (
	SessionKeyUserID   = "user_id"
	SessionKeyUsername = "username"
)

// Session represents a single authenticated browser session. The ID is an
// opaque, cryptographically random token; the client only ever holds a
// signed cookie referencing it. UserID is a weak reference: the user row
// may be removed independently of any sessions pointing at it.
type Session struct {
	ID        string         // Opaque, unguessable session identifier.
	UserID    uint64         // Weak reference to the owning user.
	Payload   map[string]any // Arbitrary session data; always carries the user identity keys.
	CreatedAt time.Time      // When the session was established by a successful login.
	ExpiresAt time.Time      // Absolute expiry. Past this instant the session is treated as absent.
}

// Expired reports whether the session's absolute TTL has elapsed at the
// given instant.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

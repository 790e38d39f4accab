package auth

import (
	"crypto/rand"
	"encoding/base64"

	"doorman/internal/errors"
)

// sessionIDBytes is the entropy of a session identifier. 32 bytes keeps
// ids far beyond guessable.
const sessionIDBytes = 32

// NewSessionID returns an opaque, cryptographically random session
// identifier, base64url-encoded so it is safe in cookies and log lines.
func NewSessionID() (string, error) {
	buf := make([]byte, sessionIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes for session id")
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

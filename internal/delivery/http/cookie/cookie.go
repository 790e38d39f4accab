// Package cookie manages the browser side of a session: a single
// HMAC-signed cookie carrying the opaque session id.
package cookie

import (
	"net/http"
	"time"

	"doorman/config"
	"doorman/internal/errors"

	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ErrNoCookie reports that the request carries no usable session cookie.
// A missing cookie, a tampered signature and a stale secret all collapse
// into this one error.
var ErrNoCookie = errors.New("no session cookie")

// Manager signs session ids into cookies and verifies them back out.
type Manager struct {
	name   string
	maxAge time.Duration
	codec  *securecookie.SecureCookie
}

// ManagerParams holds dependencies for the cookie manager, injected by Fx.
type ManagerParams struct {
	fx.In

	Config *config.Config
}

// NewManager is the constructor for Manager.
func NewManager(params ManagerParams) (*Manager, error) {
	secret := params.Config.Session.Secret
	if secret == "" {
		return nil, errors.New("session secret must not be empty")
	}

	codec := securecookie.New([]byte(secret), nil)
	codec.MaxAge(int(params.Config.Session.TTL / time.Second))

	return &Manager{
		name:   params.Config.Session.CookieName,
		maxAge: params.Config.Session.TTL,
		codec:  codec,
	}, nil
}

// Issue attaches a signed session cookie to the response.
func (m *Manager) Issue(c echo.Context, sessionID string) error {
	encoded, err := m.codec.Encode(m.name, sessionID)
	if err != nil {
		return errors.Wrap(err, "failed to encode session cookie")
	}

	c.SetCookie(&http.Cookie{
		Name:     m.name,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(m.maxAge / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Read extracts and verifies the session id from the request. Any
// failure is reported as ErrNoCookie so callers treat the request as
// anonymous instead of leaking why verification failed.
func (m *Manager) Read(c echo.Context) (string, error) {
	raw, err := c.Cookie(m.name)
	if err != nil {
		return "", ErrNoCookie
	}

	var sessionID string
	if err := m.codec.Decode(m.name, raw.Value, &sessionID); err != nil {
		return "", ErrNoCookie
	}

	return sessionID, nil
}

// Clear tells the browser to drop the session cookie.
func (m *Manager) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     m.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

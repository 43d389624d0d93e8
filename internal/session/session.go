// Package session maps an opaque cookie token to a logged-in user id. Tokens
// are HS256-signed JWTs so no server-side session table is needed.
package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const CookieName = "session"

type Manager struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewManager(secret string, ttl time.Duration, secure bool) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, secure: secure}
}

type claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

func (m *Manager) token(userID string) (string, error) {
	now := time.Now()
	c := claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
}

// Parse returns the user id carried by a session token.
func (m *Manager) Parse(token string) (string, error) {
	c := &claims{}
	_, err := jwt.ParseWithClaims(token, c, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil || c.UserID == "" {
		return "", errors.New("invalid session token")
	}
	return c.UserID, nil
}

// Establish binds a session to the user id by setting the cookie.
func (m *Manager) Establish(w http.ResponseWriter, userID string) error {
	tok, err := m.token(userID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tok,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear drops the session cookie. Idempotent.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// UserID extracts the authenticated user id from the request cookie.
func (m *Manager) UserID(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	uid, err := m.Parse(c.Value)
	if err != nil {
		return "", false
	}
	return uid, true
}

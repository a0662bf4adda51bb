package domain

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Session represents the bearer credential attached to every API request.
// It is passed explicitly into each operation rather than read from
// ambient process-wide state, so expiry can be checked before any
// network round trip is attempted.
type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSession builds a session from a bearer token, deriving the expiry
// from the token's exp claim when one is present. Tokens that do not
// parse as JWTs are kept with a zero expiry (never considered expired
// client-side; the server remains the authority via 401).
func NewSession(token string) Session {
	s := Session{
		Token:     strings.TrimSpace(token),
		CreatedAt: time.Now(),
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err == nil {
		if claims.ExpiresAt != nil {
			s.ExpiresAt = claims.ExpiresAt.Time
		}
		s.Username = claims.Subject
	}
	return s
}

// IsExpired reports whether the session is unusable at the reference time.
func (s *Session) IsExpired(reference time.Time) bool {
	if s == nil || s.Token == "" {
		return true
	}
	if s.ExpiresAt.IsZero() {
		return false
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return !s.ExpiresAt.After(reference)
}

// Validate returns ErrUnauthenticated when the session cannot be used.
func (s *Session) Validate(reference time.Time) error {
	if s.IsExpired(reference) {
		return ErrUnauthenticated
	}
	return nil
}

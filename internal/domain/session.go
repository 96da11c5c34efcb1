package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionUser is the user identity embedded in a Session.
type SessionUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// Session is the single authentication record of the store.
// A session is valid while now is before ExpiresAt, or indefinitely when
// RememberMe is set.
type Session struct {
	User       SessionUser `json:"user"`
	LoginTime  time.Time   `json:"loginTime"`
	ExpiresAt  time.Time   `json:"expiresAt"`
	RememberMe bool        `json:"rememberMe"`
}

// Valid reports whether the session may still be used at now.
func (s Session) Valid(now time.Time) bool {
	return now.Before(s.ExpiresAt) || s.RememberMe
}

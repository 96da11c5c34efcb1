package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account in the user registry.
// Email is stored lowercased; uniqueness is case-insensitive and is checked at
// registration time only.
//
// Password holds whatever the configured auth.Hasher produced: a bcrypt hash,
// or the plaintext itself in fidelity mode. It is serialized for storage but
// must never be written to an HTTP response.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
	LastLogin time.Time `json:"lastLogin"`
}

// Profile returns the public subset of the user carried inside a Session.
func (u User) Profile() SessionUser {
	return SessionUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

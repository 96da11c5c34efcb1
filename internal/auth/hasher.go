package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch is returned by Hasher.Compare when the password does not match.
var ErrMismatch = errors.New("password mismatch")

// Hasher turns passwords into their stored form and checks them later.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(stored, password string) error
}

// NewHasher returns the hasher named by PASSWORD_HASHING.
func NewHasher(name string) (Hasher, error) {
	switch name {
	case "bcrypt", "":
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	case "plaintext":
		return PlaintextHasher{}, nil
	default:
		return nil, fmt.Errorf("auth.NewHasher: unknown hasher %q", name)
	}
}

// BcryptHasher stores bcrypt hashes.
type BcryptHasher struct {
	Cost int
}

// Hash returns the bcrypt hash of password.
func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("auth.BcryptHasher.Hash: %w", err)
	}
	return string(b), nil
}

// Compare checks password against a stored bcrypt hash.
func (h BcryptHasher) Compare(stored, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)); err != nil {
		return ErrMismatch
	}
	return nil
}

// PlaintextHasher stores passwords as given, so user lists written by the
// browser client keep working. It offers no protection at rest.
type PlaintextHasher struct{}

// Hash returns password unchanged.
func (PlaintextHasher) Hash(password string) (string, error) { return password, nil }

// Compare requires an exact match.
func (PlaintextHasher) Compare(stored, password string) error {
	if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return ErrMismatch
	}
	return nil
}

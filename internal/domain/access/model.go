// Package access guards the single-user deployment with an optional
// passphrase. No accounts, no roles: one passphrase hash, stored in
// settings, unlocks a session.
package access

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashKey is the settings key the passphrase hash is stored under.
// It is deliberately not in the settings API allow-list so it cannot
// be read or overwritten over HTTP.
const HashKey = "passphrase_hash"

// Domain errors
var (
	ErrEmptyPassphrase    = errors.New("passphrase cannot be empty")
	ErrPassphraseTooShort = errors.New("passphrase must be at least 8 characters")
	ErrWrongPassphrase    = errors.New("incorrect passphrase")
)

// HashPassphrase derives the stored hash for a passphrase.
// PRE: none
// POST: Returns a bcrypt hash or a validation error
func HashPassphrase(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassphrase
	}
	if len(plaintext) < 8 {
		return "", ErrPassphraseTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassphrase verifies a plaintext passphrase against the stored hash.
// PRE: hash was produced by HashPassphrase
// POST: Returns nil on match, ErrWrongPassphrase otherwise
func CheckPassphrase(hash, plaintext string) error {
	if hash == "" {
		return ErrWrongPassphrase
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)); err != nil {
		return ErrWrongPassphrase
	}
	return nil
}

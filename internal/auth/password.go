package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the cost factor for password hashing.
const BcryptCost = 12

var ErrPasswordMismatch = errors.New("password does not match")

// HashPassword hashes a raw password with bcrypt. The plaintext is never
// persisted or logged.
func HashPassword(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a raw password against a stored bcrypt hash.
func VerifyPassword(hash, raw string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}

// Package pwd hashes and verifies user passwords with bcrypt.
package pwd

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrNotMatching is returned by Verify when the password does not match the hash.
var ErrNotMatching = errors.New("pwd: not matching")

// Hash returns the bcrypt hash of clear.
func Hash(clear string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(clear), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify checks clear against hash.
func Verify(hash, clear string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(clear))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrNotMatching
	}
	return err
}

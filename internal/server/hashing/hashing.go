// Package hashing provides the one-way password transform used for local
// credential storage.
package hashing

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authd/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// Cost is the fixed bcrypt work factor.
const Cost = 10

// Hash returns the salted bcrypt hash of password. The result is never equal
// to the plaintext and cannot be reversed.
func Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return string(hash), nil
}

// Verify reports whether password matches the stored hash. A mismatch is
// (false, nil); an error is returned only when the stored hash itself is
// malformed.
func Verify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", common.ErrorInternal, err)
}

package accounts

import (
	"github.com/goliatone/go-errors"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword will generate a password hash with the configured cost.
// The salt is random, so hashing the same plaintext twice yields
// different strings; ComparePassword accepts any hash this produced.
func (c *Credentials) HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty", errors.CategoryValidation)
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), c.bcryptCost)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}
	return string(h), nil
}

// ComparePassword will validate the given cleartext password against the
// stored hash. It reports false for any mismatch or malformed hash and
// never returns an error to callers.
func (c *Credentials) ComparePassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

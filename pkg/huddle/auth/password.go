package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is deliberately above the library default to slow offline
// guessing; tune with care, login latency scales with it.
const bcryptCost = 12

// HashPassword hashes a plain-text password for storage
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plain-text password against a stored hash.
// bcrypt's comparison is constant-time.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

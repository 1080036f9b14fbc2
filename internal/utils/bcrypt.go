package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when no account matches, so that unknown
// usernames cost the same as wrong passwords.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("agribot-dummy-password"), bcrypt.DefaultCost)

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// BurnPasswordCheck performs a comparison whose result is discarded.
func BurnPasswordCheck(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

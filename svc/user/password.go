package user

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the work factor the platform has used since launch;
// changing it only affects newly written hashes.
const bcryptCost = 10

// HashPassword produces a salted bcrypt digest of plaintext. Hashing the
// same password twice yields different digests.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches hash. A mismatch is
// not an error; an error means the stored hash is malformed, which is a
// data problem the caller must surface.
func VerifyPassword(hash, plaintext string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("malformed password hash: %w", err)
}

// IsHashed reports whether value already looks like a bcrypt digest.
// Store write paths use this guard so saving a record twice never
// double-hashes an existing digest.
func IsHashed(value string) bool {
	return strings.HasPrefix(value, "$2a$") ||
		strings.HasPrefix(value, "$2b$") ||
		strings.HasPrefix(value, "$2y$")
}

// normalizePassword hashes plaintext values and passes through values
// that are already hashed. Every store write that touches the password
// field goes through here.
func normalizePassword(value string) (string, error) {
	if value == "" || IsHashed(value) {
		return value, nil
	}
	return HashPassword(value)
}

package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	apperrors "actlog/internal/errors"
)

// BcryptCost is the work factor used for stored password hashes.
const BcryptCost = 10

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// ErrPasswordMismatch is returned when a password does not match its hash.
var ErrPasswordMismatch = errors.New("password mismatch")

// ErrEmptyPassword is returned when hashing an empty password.
var ErrEmptyPassword = errors.New("password must not be empty")

// HashPassword generates a salted bcrypt hash. Passwords over
// MaxPasswordBytes are rejected with apperrors.ErrFieldTooLong.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if len(password) > MaxPasswordBytes {
		return "", fmt.Errorf("%w: password exceeds %d bytes", apperrors.ErrFieldTooLong, MaxPasswordBytes)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: %v", apperrors.ErrFieldTooLong, err)
		}
		return "", err
	}
	return string(h), nil
}

// ComparePassword validates password against hash in constant time.
func ComparePassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return err
	}
	return nil
}

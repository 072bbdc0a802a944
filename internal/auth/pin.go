package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPIN = errors.New("invalid admin PIN")
	ErrWeakPIN    = errors.New("PIN must be at least 4 characters")
)

// HashPIN hashes the admin PIN for storage in the group config.
func HashPIN(pin string) (string, error) {
	if len(pin) < 4 {
		return "", ErrWeakPIN
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash PIN: %w", err)
	}
	return string(hash), nil
}

// CheckPIN compares a submitted PIN against the stored hash.
func CheckPIN(hash, pin string) error {
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) != nil {
		return ErrInvalidPIN
	}
	return nil
}

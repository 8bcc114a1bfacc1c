package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPairingCode hashes the code displayed at a desk using bcrypt.
func HashPairingCode(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPairingCode compares a presented pairing code with its bcrypt hash.
func CheckPairingCode(code, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}

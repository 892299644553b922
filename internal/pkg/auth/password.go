package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Şifre hash'leme maliyeti
const BcryptCost = 12

// DefaultAdminSecret is the fallback admin secret used when none is
// configured. Deployments are expected to override it via ADMIN_SECRET.
const DefaultAdminSecret = "refadmin"

// HashPassword şifre hash'leme
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword şifre doğrulama
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// CheckAdminSecret compares a submitted password against the configured
// admin secret, falling back to DefaultAdminSecret when the configuration
// is empty. A secret that looks like a bcrypt hash is compared as one;
// anything else is compared in constant time as a plain shared secret.
func CheckAdminSecret(configured, submitted string) bool {
	secret := configured
	if secret == "" {
		secret = DefaultAdminSecret
	}

	if strings.HasPrefix(secret, "$2a$") || strings.HasPrefix(secret, "$2b$") || strings.HasPrefix(secret, "$2y$") {
		return CheckPassword(secret, submitted)
	}

	return subtle.ConstantTimeCompare([]byte(secret), []byte(submitted)) == 1
}

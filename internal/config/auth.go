// Package config provides authentication configuration for the API server.
package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// AuthConfig holds configuration for operator login and API token
// validation. The server runs with a single operator credential; the
// stored hash comes from the environment, never from the database.
type AuthConfig struct {
	Secret          string
	PasswordHash    string
	ExpirationHours int
	BcryptCost      int
}

// NewAuthConfig creates auth configuration from environment variables.
// It reads AUTH_SECRET and AUTH_PASSWORD_HASH (both required),
// AUTH_EXPIRATION_HOURS (default: 24) and BCRYPT_COST (default: 12).
func NewAuthConfig() (*AuthConfig, error) {
	secret := os.Getenv("AUTH_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("AUTH_SECRET is required but not set")
	}

	passwordHash := os.Getenv("AUTH_PASSWORD_HASH")
	if passwordHash == "" {
		return nil, fmt.Errorf("AUTH_PASSWORD_HASH is required but not set")
	}

	expirationStr := os.Getenv("AUTH_EXPIRATION_HOURS")
	if expirationStr == "" {
		expirationStr = "24" // default
	}
	expirationHours, err := strconv.Atoi(expirationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_EXPIRATION_HOURS: %v", err)
	}

	costStr := os.Getenv("BCRYPT_COST")
	if costStr == "" {
		costStr = "12" // default
	}
	cost, err := strconv.Atoi(costStr)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
	}

	config := &AuthConfig{
		Secret:          secret,
		PasswordHash:    passwordHash,
		ExpirationHours: expirationHours,
		BcryptCost:      cost,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *AuthConfig) normalize() error {
	if c.ExpirationHours < 1 {
		return fmt.Errorf("AUTH_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	if c.BcryptCost < 10 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", c.BcryptCost)
	}
	return nil
}

// HashPassword hashes a password using bcrypt. Used by the hash-password
// CLI helper to produce a value for AUTH_PASSWORD_HASH.
func (c *AuthConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a login password against the stored hash.
func (c *AuthConfig) VerifyPassword(pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(pw)) == nil
}

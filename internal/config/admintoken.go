package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// AdminTokenConfig holds the bcrypt hash that guards admin endpoints.
type AdminTokenConfig struct {
	Hash       string
	BcryptCost int
}

// NewAdminTokenConfig creates the admin token configuration from the auth
// section. An empty hash is allowed and means admin endpoints are disabled.
func NewAdminTokenConfig(auth AuthConfig) (*AdminTokenConfig, error) {
	config := &AdminTokenConfig{
		Hash:       auth.AdminTokenHash,
		BcryptCost: auth.BcryptCost,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *AdminTokenConfig) normalize() error {
	if c.BcryptCost < 10 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", c.BcryptCost)
	}
	return nil
}

// Enabled reports whether an admin token hash is configured.
func (c *AdminTokenConfig) Enabled() bool {
	return c.Hash != ""
}

// HashToken hashes an admin token using bcrypt, for writing into the
// configuration.
func (c *AdminTokenConfig) HashToken(token string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(token), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash token: %w", err)
	}

	return string(hash), nil
}

// VerifyToken verifies a presented admin token against the configured hash.
// It always fails when no hash is configured.
func (c *AdminTokenConfig) VerifyToken(token string) bool {
	if !c.Enabled() {
		return false
	}

	err := bcrypt.CompareHashAndPassword([]byte(c.Hash), []byte(token))
	return err == nil
}

package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// generatedSecretBytes is the entropy of an auto-generated token secret.
const generatedSecretBytes = 32

// JWTConfig holds the session token signing secret and lifetime.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// NewJWTConfig builds a session token configuration from the auth section.
// When no secret is configured a random one is generated, so tokens work out
// of the box but do not survive a restart.
func NewJWTConfig(auth AuthConfig) (*JWTConfig, error) {
	if auth.TokenTTLHours < 1 {
		return nil, fmt.Errorf("token TTL must be at least 1 hour, got: %d", auth.TokenTTLHours)
	}

	secret := auth.JWTSecret
	if secret == "" {
		generated, err := generateSecret()
		if err != nil {
			return nil, err
		}
		secret = generated
	}

	return &JWTConfig{Secret: secret, ExpirationHours: auth.TokenTTLHours}, nil
}

func generateSecret() (string, error) {
	buf := make([]byte, generatedSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

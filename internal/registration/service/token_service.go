package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	apperrors "github.com/allisson/rsvp/internal/errors"
)

// tokenService implements TokenService using SHA-256 for token hashing.
type tokenService struct{}

// GenerateToken creates a new cryptographically secure 32-byte random token.
// The raw token is base64 RawURL-encoded (no padding, no +//) because it is
// embedded in manage URLs as a path segment. Returns the raw token and its
// SHA-256 hash.
func (t *tokenService) GenerateToken() (rawToken string, tokenHash string, err error) {
	// 32 random bytes (256 bits)
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random token")
	}

	rawToken = base64.RawURLEncoding.EncodeToString(randomBytes)
	tokenHash = t.HashToken(rawToken)

	return rawToken, tokenHash, nil
}

// HashToken hashes a raw token using SHA-256.
// Returns the hash as a lowercase hexadecimal string.
func (t *tokenService) HashToken(rawToken string) string {
	hash := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(hash[:])
}

// NewTokenService creates a new TokenService instance using SHA-256 for token hashing.
func NewTokenService() TokenService {
	return &tokenService{}
}

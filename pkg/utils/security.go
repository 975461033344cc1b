package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// tokenBytes is the amount of random data behind a registration token.
// 32 bytes (64 hex chars) makes collisions negligible, so token creation
// never needs a uniqueness retry.
const tokenBytes = 32

// GenerateRegistrationToken returns a cryptographically random token string.
func GenerateRegistrationToken() (string, error) {
	return randomHex(tokenBytes)
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

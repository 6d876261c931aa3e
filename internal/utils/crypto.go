// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// GenerateRandomString returns length characters of URL-safe random
// text.
func GenerateRandomString(length int) (string, error) {
	raw := make([]byte, (length*5+7)/8+1)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}

	encoded := strings.ToLower(base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(raw))
	return encoded[:length], nil
}

// GenerateRequestID builds an idempotency key for outbound gateway
// calls (PayPal-Request-Id header).
func GenerateRequestID() (string, error) {
	return GenerateRandomString(24)
}

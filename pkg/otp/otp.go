package otp

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
)

// CodeLength is the number of digits in a generated code
const CodeLength = 6

var randInt = rand.Int

// GenerateCode generates a 6-digit numeric code, uniformly distributed
// over [100000, 999999]
func GenerateCode() (string, error) {
	n, err := randInt(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// HashCode returns the hex-encoded SHA-256 digest of a plaintext code.
// Only the digest is ever persisted.
func HashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

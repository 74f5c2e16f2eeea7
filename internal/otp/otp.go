// Package otp generates the one-time pickup secret bound to a delivery.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Length is the number of digits in a pickup code.
const Length = 6

// Generate returns a uniformly random 6-digit numeric code in the range
// 100000-999999 from a cryptographically secure source.
func Generate() (string, error) {
	const span = 900_000 // 999999 - 100000 + 1
	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100_000), nil
}

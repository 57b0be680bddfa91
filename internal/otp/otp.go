package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Generate returns a uniformly random 6-digit numeric code as text, keeping
// leading zeros.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

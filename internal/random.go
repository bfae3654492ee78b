package internal

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

var nonceMax = big.NewInt(10000)

// NewNonce returns a per-request nonce: unix milliseconds joined with a
// random four-digit component. Uniqueness is not cryptographically
// guaranteed; collisions are irrelevant at request scale because the nonce
// only feeds the signature canonical string.
func NewNonce() (string, error) {
	n, err := rand.Int(rand.Reader, nonceMax)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d-%04d", time.Now().UnixMilli(), n.Int64()), nil
}

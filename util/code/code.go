// util/code/code.go
package code

import (
	"crypto/rand"
	"math/big"
)

const digits = "0123456789"

// Generate returns a business code like "R-48206417" or "B-90312784".
// Uniqueness is enforced by the database; collisions surface as unique violations.
func Generate(prefix string) string {
	buf := make([]byte, 8)
	max := big.NewInt(int64(len(digits)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			panic(err)
		}
		buf[i] = digits[n.Int64()]
	}
	return prefix + string(buf)
}

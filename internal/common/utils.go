package common

import "crypto/rand"

// GenerateRandByteArray returns size random bytes. It panics only if the
// system random source fails.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// WipeByteArray zeroes b in place. Used for secrets read from the terminal.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

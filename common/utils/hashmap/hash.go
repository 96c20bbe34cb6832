package hashmap

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

const polynomialPrime = 31

// HashFunc maps a key onto a bucket index in [0, size).
type HashFunc func(key string, size uint32) uint32

// Polynomial is the default bucket hash: hash = hash*31 + b over the key's bytes, with
// uint32 wraparound, reduced mod size.
func Polynomial(key string, size uint32) uint32 {
	var hash uint32
	for i := 0; i < len(key); i++ {
		hash = hash*polynomialPrime + uint32(key[i])
	}
	return hash % size
}

// SHA3Hash reduces the first four bytes of the key's SHA3-256 digest mod size.
// It spreads keys that share long prefixes more evenly than Polynomial.
func SHA3Hash(key string, size uint32) uint32 {
	digest := sha3.Sum256([]byte(key))
	return binary.BigEndian.Uint32(digest[:4]) % size
}

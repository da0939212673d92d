// Package passwords turns plaintext passwords into self-describing one-way
// hashes and checks candidates against them.
package passwords

import (
	"fmt"
)

const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2ID = "argon2id"

	// DefaultBcryptCost matches the cost the service has always used.
	DefaultBcryptCost = 10
)

// Hasher hashes with a fresh random salt per call. Verify reports false on
// mismatch and on malformed input; it never returns an error.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, encoded string) bool
}

// New returns the hasher for algorithm. bcryptCost is ignored by argon2id.
func New(algorithm string, bcryptCost int) (Hasher, error) {
	switch algorithm {
	case "", AlgorithmBcrypt:
		return NewBcryptHasher(bcryptCost)
	case AlgorithmArgon2ID:
		return NewArgon2Hasher(), nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", algorithm)
	}
}

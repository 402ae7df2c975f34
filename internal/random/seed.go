// Package random provides cryptographic seed generation helpers.
//
// Seeds initialize the deterministic dice source of a game; a game replayed
// with the same seed and the same operations produces the same log.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// ResolveSeed returns seed when it is set, otherwise a fresh random seed.
// The boolean reports whether the seed was generated.
func ResolveSeed(seed int64) (int64, bool, error) {
	if seed != 0 {
		return seed, false, nil
	}
	generated, err := NewSeed()
	if err != nil {
		return 0, false, err
	}
	return generated, true, nil
}

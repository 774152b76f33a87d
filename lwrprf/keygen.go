package lwrprf

import (
	"crypto/rand"
	"fmt"
	"io"

	"LWR-PRF/lwrprf/keys"

	"github.com/tuneinsight/lattigo/v4/utils"
	"golang.org/x/crypto/sha3"
)

// keygenLabel domain-separates seed expansion from the domain hash.
const keygenLabel = "lwr-prf/keygen"

// GenerateKey samples n secret bits. A non-nil seed makes the key
// deterministic: the seed is expanded with the same SHAKE256 XOF the domain
// hash pins, so a cooperating implementation can re-derive a seeded key bit
// for bit without a second primitive. A nil seed draws a fresh key from a
// blake2b PRNG keyed with 32 bytes of system randomness.
func GenerateKey(n int, seed []byte) (*keys.SecretKey, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: key dimension n=%d, want >0", ErrInvalidParams, n)
	}
	var src io.Reader
	if seed != nil {
		h := sha3.NewShake256()
		if _, err := h.Write([]byte(keygenLabel)); err != nil {
			panic(fmt.Errorf("GenerateKey: absorb label: %w", err))
		}
		if _, err := h.Write(seed); err != nil {
			panic(fmt.Errorf("GenerateKey: absorb seed: %w", err))
		}
		src = h
	} else {
		fresh := make([]byte, 32)
		if _, err := rand.Read(fresh); err != nil {
			return nil, fmt.Errorf("read system randomness: %w", err)
		}
		prng, err := utils.NewKeyedPRNG(fresh)
		if err != nil {
			return nil, fmt.Errorf("keyed prng: %w", err)
		}
		src = prng
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(src, buf); err != nil {
		return nil, fmt.Errorf("prng read: %w", err)
	}
	bits := make([]uint64, n)
	for i, b := range buf {
		bits[i] = uint64(b & 1)
	}
	return &keys.SecretKey{N: n, Bits: bits}, nil
}

// SeedUint64 encodes an integer seed as the 8-byte little-endian seed bytes
// GenerateKey expands.
func SeedUint64(seed uint64) []byte {
	return u64le(seed)
}

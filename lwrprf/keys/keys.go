// Package keys persists the LWR secret key. The on-disk format is a JSON
// record carrying the declared dimension and the ordered bit vector, so a
// loader can validate both before any evaluation uses the key.
package keys

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	// ErrDimensionMismatch reports a stored key whose declared dimension
	// differs from the configured one.
	ErrDimensionMismatch = errors.New("secret key dimension mismatch")
	// ErrInvalidKeyData reports a stored key element that is not 0 or 1.
	ErrInvalidKeyData = errors.New("secret key contains non-binary values")
)

// SecretKey is the binary LWR secret s in {0,1}^n together with its
// declared dimension. The JSON field names match the reference client's
// secret_key.json so existing key files load unchanged.
type SecretKey struct {
	N    int      `json:"n_lwr"`
	Bits []uint64 `json:"secret_key"`
}

// Validate checks that the declared dimension matches the stored bits and
// that every element is binary.
func (k *SecretKey) Validate() error {
	if k == nil {
		return errors.New("nil secret key")
	}
	if k.N != len(k.Bits) {
		return fmt.Errorf("%w: declared n=%d, stored %d bits", ErrDimensionMismatch, k.N, len(k.Bits))
	}
	for i, b := range k.Bits {
		if b > 1 {
			return fmt.Errorf("%w: bit %d is %d", ErrInvalidKeyData, i, b)
		}
	}
	return nil
}

// Clone returns an independent copy of the key.
func (k *SecretKey) Clone() *SecretKey {
	return &SecretKey{N: k.N, Bits: append([]uint64(nil), k.Bits...)}
}

// Save writes the key to path. The key is validated first; a malformed key
// is never persisted. Concurrent writers are not coordinated, single-process
// use is assumed.
func Save(path string, key *SecretKey) error {
	if err := key.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create key file: %w", err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(key); err != nil {
		return fmt.Errorf("encode key file: %w", err)
	}
	return nil
}

// Load reads the key at path and validates it against the configured
// dimension. A dimension or binarity violation fails loudly; the key is
// never truncated, padded, or coerced.
func Load(path string, expectedN int) (*SecretKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	var key SecretKey
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, fmt.Errorf("decode key file %s: %w", path, err)
	}
	if key.N != expectedN {
		return nil, fmt.Errorf("%w: file %s declares n=%d, configured n=%d", ErrDimensionMismatch, path, key.N, expectedN)
	}
	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("key file %s: %w", path, err)
	}
	return &key, nil
}

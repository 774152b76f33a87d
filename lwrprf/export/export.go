// Package export emits the line-oriented verification artifacts the RTL
// testbench consumes: the hashed vector as fixed-width hex and the secret
// key as one bit per line, both in index order.
package export

import (
	"fmt"
	"io"
	"math/bits"
	"os"

	"LWR-PRF/lwrprf"
	"LWR-PRF/lwrprf/keys"
)

// WriteHashVector writes one vector element per line as lowercase hex,
// zero-padded to the width of 2N-1 (3 digits for N=2048).
func WriteHashVector(w io.Writer, params lwrprf.Params, a []uint64) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if len(a) != params.Dim {
		return fmt.Errorf("%w: vector has %d elements, want n=%d", lwrprf.ErrLengthMismatch, len(a), params.Dim)
	}
	twoN := params.TwoN()
	width := hexWidth(twoN - 1)
	for i, v := range a {
		if v >= twoN {
			return fmt.Errorf("%w: a[%d]=%d, hashing modulus 2N=%d", lwrprf.ErrOutOfRange, i, v, twoN)
		}
		if _, err := fmt.Fprintf(w, "%0*x\n", width, v); err != nil {
			return fmt.Errorf("write element %d: %w", i, err)
		}
	}
	return nil
}

// WriteSecretKey writes one key bit per line in index order.
func WriteSecretKey(w io.Writer, key *keys.SecretKey) error {
	if err := key.Validate(); err != nil {
		return err
	}
	for i, b := range key.Bits {
		if _, err := fmt.Fprintf(w, "%d\n", b); err != nil {
			return fmt.Errorf("write bit %d: %w", i, err)
		}
	}
	return nil
}

// HashVectorFile writes the vector to path. On any failure the partial file
// is removed; no partial export is ever left behind as valid.
func HashVectorFile(path string, params lwrprf.Params, a []uint64) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteHashVector(w, params, a)
	})
}

// SecretKeyFile writes the key bits to path, removing any partial file on
// failure.
func SecretKeyFile(path string, key *keys.SecretKey) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteSecretKey(w, key)
	})
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func hexWidth(max uint64) int {
	w := (bits.Len64(max) + 3) / 4
	if w == 0 {
		w = 1
	}
	return w
}

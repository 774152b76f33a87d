// Package lwrprf implements the client side of a depth-1
// learning-with-rounding PRF used for FHE transciphering: a hash-to-vector
// domain map, the inner-product-and-round evaluation, multi-slot keystream
// generation, and the additive stream cipher built on top. The arithmetic
// is bit-exact with the homomorphic evaluator and the RTL implementation
// verified against this code.
package lwrprf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"LWR-PRF/lwrprf/keys"
)

var (
	// ErrLengthMismatch reports sequences whose lengths disagree with the
	// configured dimensions.
	ErrLengthMismatch = errors.New("length mismatch")
	// ErrOutOfRange reports an element outside its modular domain.
	ErrOutOfRange = errors.New("element out of range")
)

// Client evaluates the PRF under one secret key. The key is fixed at
// construction; all methods are pure functions over it and safe for
// concurrent use.
type Client struct {
	params Params
	s      []uint64
}

// NewClient builds a Client from explicit parameters and key. The key is
// validated against the parameter dimension; nothing is read from disk.
func NewClient(params Params, key *keys.SecretKey) (*Client, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if key.N != params.Dim {
		return nil, fmt.Errorf("%w: key has n=%d, params have n=%d", keys.ErrDimensionMismatch, key.N, params.Dim)
	}
	return &Client{params: params, s: append([]uint64(nil), key.Bits...)}, nil
}

// KeyStoreOptions selects how Open obtains the secret key.
type KeyStoreOptions struct {
	Path            string // key file location
	Seed            []byte // optional seed for deterministic generation
	ForceRegenerate bool   // always generate a fresh key and overwrite Path
}

// Open constructs a Client with the load-if-present-else-generate policy:
// an existing key file is loaded and validated, otherwise a key is generated
// (from opts.Seed when given) and persisted before the Client is returned.
// ForceRegenerate skips the load and overwrites any existing file.
func Open(params Params, opts KeyStoreOptions) (*Client, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if !opts.ForceRegenerate {
		if _, err := os.Stat(opts.Path); err == nil {
			key, err := keys.Load(opts.Path, params.Dim)
			if err != nil {
				return nil, err
			}
			return NewClient(params, key)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stat key file: %w", err)
		}
	}
	key, err := GenerateKey(params.Dim, opts.Seed)
	if err != nil {
		return nil, err
	}
	if err := keys.Save(opts.Path, key); err != nil {
		return nil, err
	}
	return NewClient(params, key)
}

// Params returns the parameter set the client was built with.
func (c *Client) Params() Params {
	return c.params
}

// Key returns a copy of the secret key.
func (c *Client) Key() *keys.SecretKey {
	return &keys.SecretKey{N: c.params.Dim, Bits: append([]uint64(nil), c.s...)}
}

// Trace records every arithmetic stage of one PRF evaluation. The hardware
// testbench compares these values against its pipeline registers.
type Trace struct {
	InnerProduct uint64 // sum a[i]*s[i] over the integers
	Mod2N        uint64 // inner product mod 2N
	ModN         uint64 // inner product mod N (separate reduction)
	MSB          uint64 // 1 when Mod2N >= N; selects the sign
	Rounded      uint64 // floor(p * ModN / N)
	Output       uint64 // PRF output in [0, p)
}

// TraceEvaluate computes one PRF output from a hashed vector and returns
// all intermediates. The accumulator never reduces during the sum; Validate
// guarantees n*(2N-1) fits in 64 bits. The final reduction mod p is applied
// unconditionally so the rounding boundary normalizes to 0.
func (c *Client) TraceEvaluate(a []uint64) (Trace, error) {
	if len(a) != c.params.Dim {
		return Trace{}, fmt.Errorf("%w: hash vector has %d elements, want n=%d", ErrLengthMismatch, len(a), c.params.Dim)
	}
	twoN := c.params.TwoN()
	var ip uint64
	for i, ai := range a {
		if ai >= twoN {
			return Trace{}, fmt.Errorf("%w: a[%d]=%d, hashing modulus 2N=%d", ErrOutOfRange, i, ai, twoN)
		}
		ip += ai * c.s[i]
	}
	N := c.params.RingDim
	p := c.params.P
	tr := Trace{
		InnerProduct: ip,
		Mod2N:        ip % twoN,
		ModN:         ip % N,
	}
	if tr.Mod2N >= N {
		tr.MSB = 1
	}
	tr.Rounded = p * tr.ModN / N
	if tr.MSB == 1 {
		tr.Output = (p - tr.Rounded) % p
	} else {
		tr.Output = tr.Rounded % p
	}
	return tr, nil
}

// EvaluateAt computes the PRF output for an already-hashed vector.
func (c *Client) EvaluateAt(a []uint64) (uint64, error) {
	tr, err := c.TraceEvaluate(a)
	if err != nil {
		return 0, err
	}
	return tr.Output, nil
}

// Evaluate computes PRF_s(x) at slot index 0.
func (c *Client) Evaluate(x []byte) (uint64, error) {
	a, err := HashToVector(c.params, x, 0)
	if err != nil {
		return 0, err
	}
	return c.EvaluateAt(a)
}

// EvaluateMany produces count PRF outputs for one input by hashing with
// slot indices 0..count-1. Slots carry no state between them; element i
// always equals EvaluateAt(HashToVector(x, i)).
func (c *Client) EvaluateMany(x []byte, count int) ([]uint64, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative output count %d", ErrLengthMismatch, count)
	}
	out := make([]uint64, count)
	for i := range out {
		a, err := HashToVector(c.params, x, uint64(i))
		if err != nil {
			return nil, err
		}
		v, err := c.EvaluateAt(a)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

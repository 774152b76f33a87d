package lwrprf

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"math/bits"
	"os"
)

// ErrInvalidParams reports a parameter set outside the supported domain.
var ErrInvalidParams = errors.New("invalid parameters")

// Params holds the public parameters of the depth-1 LWR PRF. All three
// values must be agreed out-of-band with every cooperating party (the
// homomorphic server and the hardware testbench); a silent mismatch makes
// the keystreams diverge without any error.
type Params struct {
	Dim     int    `json:"n_lwr"`    // secret-key dimension n
	RingDim uint64 `json:"ring_dim"` // ring dimension N, power of two
	P       uint64 `json:"p"`        // plaintext modulus
}

// ParamsN445 is the reference parameter set (PARAM_MESSAGE_2_CARRY_2):
// n=445, N=2048, p=32 for 5-bit outputs.
var ParamsN445 = Params{Dim: 445, RingDim: 2048, P: 32}

// TwoN returns the hashing modulus 2N.
func (p Params) TwoN() uint64 {
	return 2 * p.RingDim
}

// MinAccBits returns the minimum accumulator width, in bits, needed to hold
// the worst-case inner product n*(2N-1) without overflow.
func (p Params) MinAccBits() int {
	acc := new(big.Int).SetUint64(p.TwoN() - 1)
	acc.Mul(acc, big.NewInt(int64(p.Dim)))
	return acc.BitLen()
}

// Validate performs consistency checks on the parameter set. Evaluation
// accumulates the inner product in a uint64, so the worst case n*(2N-1)
// must fit in 64 bits; the bound is checked with big.Int arithmetic so the
// guard itself cannot overflow.
func (p Params) Validate() error {
	if p.Dim <= 0 {
		return fmt.Errorf("%w: key dimension n=%d, want >0", ErrInvalidParams, p.Dim)
	}
	if p.RingDim == 0 || bits.OnesCount64(p.RingDim) != 1 {
		return fmt.Errorf("%w: ring dimension N=%d, want a power of two", ErrInvalidParams, p.RingDim)
	}
	if p.RingDim > 1<<62 {
		return fmt.Errorf("%w: ring dimension N=%d, 2N overflows uint64", ErrInvalidParams, p.RingDim)
	}
	if p.P < 1 || p.P > p.TwoN() {
		return fmt.Errorf("%w: plaintext modulus p=%d, want 1 <= p <= 2N=%d", ErrInvalidParams, p.P, p.TwoN())
	}
	if w := p.MinAccBits(); w > 64 {
		return fmt.Errorf("%w: inner product needs %d bits (n=%d, N=%d), accumulator is 64",
			ErrInvalidParams, w, p.Dim, p.RingDim)
	}
	// Rounding computes p*(ip mod N) before the division by N.
	prod := new(big.Int).SetUint64(p.P)
	prod.Mul(prod, new(big.Int).SetUint64(p.RingDim-1))
	if prod.BitLen() > 64 {
		return fmt.Errorf("%w: rounding product p*(N-1) needs %d bits (p=%d, N=%d)",
			ErrInvalidParams, prod.BitLen(), p.P, p.RingDim)
	}
	return nil
}

// LoadParams decodes parameters from JSON and validates them.
func LoadParams(r io.Reader) (Params, error) {
	dec := json.NewDecoder(r)
	var p Params
	if err := dec.Decode(&p); err != nil {
		return Params{}, fmt.Errorf("decode params: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// LoadParamsFromFile opens the given path, decodes JSON parameters, and
// validates them.
func LoadParamsFromFile(path string) (Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return Params{}, fmt.Errorf("open params file: %w", err)
	}
	defer f.Close()
	return LoadParams(f)
}
